// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/avolkov/critica/pkg/pagination"
	"github.com/avolkov/critica/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListCategories returns a page of categories, optionally filtered by a
// case-insensitive name search.
func (service *Service) ListCategories(context context.Context, search string, params pagination.Params) ([]Category, int, error) {
	return service.repo.List(context, search, params)
}

/*
CreateCategory persists a new category.

Description: When the slug is omitted it is derived from the name, so admins
only need to supply one when the generated form is undesirable.

Parameters:
  - context: context.Context
  - input: *Category

Returns:
  - error: Conflict when the slug is already taken, or storage errors
*/
func (service *Service) CreateCategory(context context.Context, input *Category) error {
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	return service.repo.Create(context, input)
}

// DeleteCategory removes a category by slug.
//
// Titles referencing it keep existing; their category link is cleared by the
// ON DELETE SET NULL constraint on catalog.title.
func (service *Service) DeleteCategory(context context.Context, categorySlug string) error {
	return service.repo.DeleteBySlug(context, categorySlug)
}
