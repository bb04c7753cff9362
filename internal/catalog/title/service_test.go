// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package title

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/catalog/category"
	"github.com/avolkov/critica/internal/catalog/genre"
	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/pkg/pagination"
	"github.com/avolkov/critica/pkg/pointer"
)

// # Test Fakes

type fakeTitleRepository struct {
	titles map[int64]*Title
	nextID int64

	lastGenreIDs      []int64
	lastReplaceGenres bool
}

func (f *fakeTitleRepository) List(_ context.Context, _ Filter, _ pagination.Params) ([]Title, int, error) {
	out := make([]Title, 0, len(f.titles))
	for _, t := range f.titles {
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (f *fakeTitleRepository) GetByID(_ context.Context, id int64) (*Title, error) {
	t, ok := f.titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTitleRepository) Create(_ context.Context, title *Title, genreIDs []int64) error {
	f.nextID++
	title.ID = f.nextID
	f.titles[title.ID] = title
	f.lastGenreIDs = genreIDs
	return nil
}

func (f *fakeTitleRepository) Update(_ context.Context, title *Title, genreIDs []int64, replaceGenres bool) error {
	if _, ok := f.titles[title.ID]; !ok {
		return apperr.NotFound("Title")
	}
	f.titles[title.ID] = title
	f.lastGenreIDs = genreIDs
	f.lastReplaceGenres = replaceGenres
	return nil
}

func (f *fakeTitleRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(f.titles, id)
	return nil
}

type fakeCategoryResolver struct {
	known map[string]*category.Category
}

func (f *fakeCategoryResolver) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := f.known[slug]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Category")
}

type fakeGenreResolver struct {
	known map[string]*genre.Genre
}

func (f *fakeGenreResolver) GetBySlug(_ context.Context, slug string) (*genre.Genre, error) {
	if g, ok := f.known[slug]; ok {
		return g, nil
	}
	return nil, apperr.NotFound("Genre")
}

func newTestService() (*Service, *fakeTitleRepository) {
	repo := &fakeTitleRepository{titles: make(map[int64]*Title)}
	categories := &fakeCategoryResolver{known: map[string]*category.Category{
		"books": {ID: 1, Name: "Books", Slug: "books"},
	}}
	genres := &fakeGenreResolver{known: map[string]*genre.Genre{
		"fantasy": {ID: 10, Name: "Fantasy", Slug: "fantasy"},
		"drama":   {ID: 11, Name: "Drama", Slug: "drama"},
	}}
	return NewService(repo, categories, genres, slog.Default()), repo
}

// # Tests

/*
TestCreateTitle_ResolvesReferences verifies that category and genre slugs are
resolved to catalog entities before persistence.
*/
func TestCreateTitle_ResolvesReferences(t *testing.T) {
	service, repo := newTestService()

	created, err := service.CreateTitle(context.Background(), CreateInput{
		Name:         "The Hobbit",
		Year:         1937,
		CategorySlug: "books",
		GenreSlugs:   []string{"fantasy", "drama"},
	})

	require.NoError(t, err)
	require.NotNil(t, created.Category)
	assert.Equal(t, "books", created.Category.Slug)
	assert.Len(t, created.Genres, 2)
	assert.Equal(t, []int64{10, 11}, repo.lastGenreIDs)
}

/*
TestCreateTitle_UnknownSlug verifies that a dangling slug fails the whole
request with a validation error and writes nothing.
*/
func TestCreateTitle_UnknownSlug(t *testing.T) {
	service, repo := newTestService()

	_, err := service.CreateTitle(context.Background(), CreateInput{
		Name:       "Unknown",
		Year:       2000,
		GenreSlugs: []string{"fantasy", "no-such-genre"},
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Empty(t, repo.titles)
}

/*
TestUpdateTitle_Partial verifies that nil fields are left untouched and that
genres are only replaced when a genre list is supplied.
*/
func TestUpdateTitle_Partial(t *testing.T) {
	service, repo := newTestService()
	repo.titles[1] = &Title{ID: 1, Name: "Old Name", Year: 1990}
	repo.nextID = 1

	updated, err := service.UpdateTitle(context.Background(), 1, UpdateInput{
		Name: pointer.To("New Name"),
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 1990, updated.Year)
	assert.False(t, repo.lastReplaceGenres)

	_, err = service.UpdateTitle(context.Background(), 1, UpdateInput{
		GenreSlugs: &[]string{"drama"},
	})

	require.NoError(t, err)
	assert.True(t, repo.lastReplaceGenres)
	assert.Equal(t, []int64{11}, repo.lastGenreIDs)
}

/*
TestUpdateTitle_NotFound verifies the 404 path for missing titles.
*/
func TestUpdateTitle_NotFound(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpdateTitle(context.Background(), 99, UpdateInput{Name: pointer.To("X")})
	assert.True(t, apperr.IsNotFound(err))
}
