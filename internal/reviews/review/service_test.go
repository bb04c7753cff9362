// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package review

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/catalog/title"
	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/pkg/pagination"
	"github.com/avolkov/critica/pkg/pointer"
)

// # Test Fakes

type fakeReviewRepository struct {
	reviews map[int64]*Review
	nextID  int64
}

func (f *fakeReviewRepository) ListByTitle(_ context.Context, titleID int64, _ pagination.Params) ([]Review, int, error) {
	out := make([]Review, 0)
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewRepository) GetByID(_ context.Context, titleID, reviewID int64) (*Review, error) {
	r, ok := f.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewRepository) ExistsForAuthor(_ context.Context, titleID, authorID int64) (bool, error) {
	for _, r := range f.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepository) Create(_ context.Context, review *Review) error {
	f.nextID++
	review.ID = f.nextID
	review.PubDate = time.Now()
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepository) Update(_ context.Context, review *Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return apperr.NotFound("Review")
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepository) Delete(_ context.Context, reviewID int64) error {
	if _, ok := f.reviews[reviewID]; !ok {
		return apperr.NotFound("Review")
	}
	delete(f.reviews, reviewID)
	return nil
}

type fakeTitleResolver struct {
	known map[int64]bool
}

func (f *fakeTitleResolver) GetTitle(_ context.Context, id int64) (*title.Title, error) {
	if f.known[id] {
		return &title.Title{ID: id}, nil
	}
	return nil, apperr.NotFound("Title")
}

func newTestService() (*Service, *fakeReviewRepository) {
	repo := &fakeReviewRepository{reviews: make(map[int64]*Review)}
	titles := &fakeTitleResolver{known: map[int64]bool{1: true}}
	return NewService(repo, titles, slog.Default()), repo
}

var (
	author    = Actor{UserID: 100, Role: sec.RoleUser}
	stranger  = Actor{UserID: 200, Role: sec.RoleUser}
	moderator = Actor{UserID: 300, Role: sec.RoleModerator}
)

// # Tests

/*
TestCreateReview_UnknownTitle verifies that posting on a missing title is a 404,
not a dangling insert.
*/
func TestCreateReview_UnknownTitle(t *testing.T) {
	service, repo := newTestService()

	_, err := service.CreateReview(context.Background(), CreateInput{
		TitleID: 42,
		Author:  author,
		Text:    "Great",
		Score:   9,
	})

	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, repo.reviews)
}

/*
TestCreateReview_OncePerTitle verifies the one-review-per-title rule.
*/
func TestCreateReview_OncePerTitle(t *testing.T) {
	service, _ := newTestService()

	first, err := service.CreateReview(context.Background(), CreateInput{
		TitleID: 1, Author: author, Text: "Great", Score: 9,
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = service.CreateReview(context.Background(), CreateInput{
		TitleID: 1, Author: author, Text: "Changed my mind", Score: 3,
	})
	assert.True(t, apperr.IsConflict(err))

	// A different user may still review the same title.
	_, err = service.CreateReview(context.Background(), CreateInput{
		TitleID: 1, Author: stranger, Text: "Mediocre", Score: 5,
	})
	assert.NoError(t, err)
}

/*
TestUpdateReview_Ownership verifies that only the author or a moderator may
edit a review.
*/
func TestUpdateReview_Ownership(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateReview(context.Background(), CreateInput{
		TitleID: 1, Author: author, Text: "Great", Score: 9,
	})
	require.NoError(t, err)

	// Stranger is rejected.
	_, err = service.UpdateReview(context.Background(), 1, created.ID, stranger, UpdateInput{
		Score: pointer.To(1),
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)

	// Author may edit.
	updated, err := service.UpdateReview(context.Background(), 1, created.ID, author, UpdateInput{
		Score: pointer.To(7),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Score)
	assert.Equal(t, "Great", updated.Text)

	// Moderator may edit anyone's.
	updated, err = service.UpdateReview(context.Background(), 1, created.ID, moderator, UpdateInput{
		Text: pointer.To("Toned down"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Toned down", updated.Text)
}

/*
TestDeleteReview_Ownership verifies delete follows the same policy as edit.
*/
func TestDeleteReview_Ownership(t *testing.T) {
	service, repo := newTestService()

	created, err := service.CreateReview(context.Background(), CreateInput{
		TitleID: 1, Author: author, Text: "Great", Score: 9,
	})
	require.NoError(t, err)

	err = service.DeleteReview(context.Background(), 1, created.ID, stranger)
	require.Error(t, err)

	err = service.DeleteReview(context.Background(), 1, created.ID, moderator)
	require.NoError(t, err)
	assert.Empty(t, repo.reviews)
}
