// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/avolkov/critica/internal/catalog/title"
	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/pkg/pagination"
)

// # Contracts & Types

// TitleResolver verifies that a title exists before reviews are touched.
type TitleResolver interface {
	GetTitle(context context.Context, id int64) (*title.Title, error)
}

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	UserID int64
	Role   sec.UserRole
}

type Service struct {
	repo   Repository
	titles TitleResolver
	logger *slog.Logger
}

func NewService(repo Repository, titles TitleResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

// # Read Path

// ListReviews returns a page of reviews for a title, oldest first.
//
// Fails with NotFound when the title itself does not exist, so a review
// listing never silently materializes an empty page for a bogus title ID.
func (service *Service) ListReviews(context context.Context, titleID int64, params pagination.Params) ([]Review, int, error) {
	if _, err := service.titles.GetTitle(context, titleID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListByTitle(context, titleID, params)
}

// GetReview returns a single review scoped to its title.
func (service *Service) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.repo.GetByID(context, titleID, reviewID)
}

// # Write Path

// CreateInput holds the data required to post a review.
type CreateInput struct {
	TitleID int64
	Author  Actor
	Text    string
	Score   int
}

/*
CreateReview posts a new review on a title.

Description: Verifies the title exists and enforces the one-review-per-title
rule before inserting. The database carries a matching unique constraint, so
a concurrent duplicate still resolves to the same conflict.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Review: Created review with the author attached
  - error: NotFound (unknown title), Conflict (duplicate review), or storage errors
*/
func (service *Service) CreateReview(context context.Context, input CreateInput) (*Review, error) {
	if _, err := service.titles.GetTitle(context, input.TitleID); err != nil {
		return nil, err
	}

	exists, err := service.repo.ExistsForAuthor(context, input.TitleID, input.Author.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("You have already reviewed this title")
	}

	newReview := &Review{
		TitleID:  input.TitleID,
		AuthorID: input.Author.UserID,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repo.Create(context, newReview); err != nil {
		return nil, err
	}

	return newReview, nil
}

// UpdateInput holds a partial review update. Nil fields are left untouched.
type UpdateInput struct {
	Text  *string
	Score *int
}

/*
UpdateReview applies a partial update to an existing review.

Description: The author may edit their own review; moderators and admins may
edit anyone's.

Parameters:
  - context: context.Context
  - titleID: int64
  - reviewID: int64
  - actor: Actor
  - input: UpdateInput

Returns:
  - *Review: Updated review
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) UpdateReview(context context.Context, titleID, reviewID int64, actor Actor, input UpdateInput) (*Review, error) {
	existing, err := service.repo.GetByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.Authorize(actor.Role, sec.OpWrite, existing.AuthorID, actor.UserID) {
		return nil, apperr.Forbidden("You cannot edit someone else's review")
	}

	if input.Text != nil {
		existing.Text = *input.Text
	}
	if input.Score != nil {
		existing.Score = *input.Score
	}

	if err := service.repo.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteReview removes a review under the same ownership policy as updates.
// The review's comments are removed by the cascade on reviews.comment.
func (service *Service) DeleteReview(context context.Context, titleID, reviewID int64, actor Actor) error {
	existing, err := service.repo.GetByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.Authorize(actor.Role, sec.OpDelete, existing.AuthorID, actor.UserID) {
		return apperr.Forbidden("You cannot delete someone else's review")
	}

	return service.repo.Delete(context, existing.ID)
}
