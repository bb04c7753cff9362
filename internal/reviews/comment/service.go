// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/internal/reviews/review"
	"github.com/avolkov/critica/pkg/pagination"
)

// ReviewResolver verifies that a review exists under the given title before
// comments are touched.
type ReviewResolver interface {
	GetReview(context context.Context, titleID, reviewID int64) (*review.Review, error)
}

type Service struct {
	repo    Repository
	reviews ReviewResolver
	logger  *slog.Logger
}

func NewService(repo Repository, reviews ReviewResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		reviews: reviews,
		logger:  logger,
	}
}

// ListComments returns a page of comments on a review, oldest first.
func (service *Service) ListComments(context context.Context, titleID, reviewID int64, params pagination.Params) ([]Comment, int, error) {
	if _, err := service.reviews.GetReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListByReview(context, reviewID, params)
}

// GetComment returns a single comment scoped to its review.
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if _, err := service.reviews.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	return service.repo.GetByID(context, reviewID, commentID)
}

// CreateComment posts a new comment on a review.
func (service *Service) CreateComment(context context.Context, titleID, reviewID int64, actor review.Actor, text string) (*Comment, error) {
	if _, err := service.reviews.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	newComment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Text:     text,
	}

	if err := service.repo.Create(context, newComment); err != nil {
		return nil, err
	}

	return newComment, nil
}

// UpdateComment edits a comment's text under the ownership policy.
func (service *Service) UpdateComment(context context.Context, titleID, reviewID, commentID int64, actor review.Actor, text string) (*Comment, error) {
	existing, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.Authorize(actor.Role, sec.OpWrite, existing.AuthorID, actor.UserID) {
		return nil, apperr.Forbidden("You cannot edit someone else's comment")
	}

	existing.Text = text
	if err := service.repo.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteComment removes a comment under the ownership policy.
func (service *Service) DeleteComment(context context.Context, titleID, reviewID, commentID int64, actor review.Actor) error {
	existing, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.Authorize(actor.Role, sec.OpDelete, existing.AuthorID, actor.UserID) {
		return apperr.Forbidden("You cannot delete someone else's comment")
	}

	return service.repo.Delete(context, existing.ID)
}
