// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package category

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/pkg/pagination"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	categories []Category
	nextID     int64
}

func (f *fakeRepository) List(_ context.Context, search string, _ pagination.Params) ([]Category, int, error) {
	return f.categories, len(f.categories), nil
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*Category, error) {
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			return &f.categories[i], nil
		}
	}
	return nil, apperr.NotFound("Category")
}

func (f *fakeRepository) Create(_ context.Context, category *Category) error {
	for _, existing := range f.categories {
		if existing.Slug == category.Slug {
			return apperr.Conflict("Resource already exists")
		}
	}
	f.nextID++
	category.ID = f.nextID
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Category")
}

func newTestService() (*Service, *fakeRepository) {
	repo := &fakeRepository{}
	return NewService(repo, slog.Default()), repo
}

/*
TestCreateCategory_DerivesSlug verifies that an omitted slug is generated
from the category name.
*/
func TestCreateCategory_DerivesSlug(t *testing.T) {
	service, _ := newTestService()

	category := &Category{Name: "Science Fiction"}
	err := service.CreateCategory(context.Background(), category)

	require.NoError(t, err)
	assert.Equal(t, "science-fiction", category.Slug)
	assert.NotZero(t, category.ID)
}

/*
TestCreateCategory_KeepsExplicitSlug verifies that a provided slug is not
overwritten by the generated one.
*/
func TestCreateCategory_KeepsExplicitSlug(t *testing.T) {
	service, _ := newTestService()

	category := &Category{Name: "Films", Slug: "movies"}
	err := service.CreateCategory(context.Background(), category)

	require.NoError(t, err)
	assert.Equal(t, "movies", category.Slug)
}

/*
TestCreateCategory_DuplicateSlug verifies the conflict on a reused slug.
*/
func TestCreateCategory_DuplicateSlug(t *testing.T) {
	service, _ := newTestService()

	require.NoError(t, service.CreateCategory(context.Background(), &Category{Name: "Books", Slug: "books"}))

	err := service.CreateCategory(context.Background(), &Category{Name: "Audiobooks", Slug: "books"})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

/*
TestDeleteCategory verifies deletion by slug, including the not-found case.
*/
func TestDeleteCategory(t *testing.T) {
	service, repo := newTestService()
	repo.categories = []Category{{ID: 1, Name: "Music", Slug: "music"}}

	require.NoError(t, service.DeleteCategory(context.Background(), "music"))
	assert.Empty(t, repo.categories)

	err := service.DeleteCategory(context.Background(), "music")
	assert.True(t, apperr.IsNotFound(err))
}
