// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package genre

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

// ListGenres returns a page of genres, optionally filtered by a
// case-insensitive name search.
func (service *Service) ListGenres(context context.Context, search string, params pagination.Params) ([]Genre, int, error) {
	return service.repo.List(context, search, params)
}

// CreateGenre persists a new genre, deriving the slug from the name when omitted.
func (service *Service) CreateGenre(context context.Context, input *Genre) error {
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	return service.repo.Create(context, input)
}

// DeleteGenre removes a genre by slug. Titles tagged with it simply lose the tag.
func (service *Service) DeleteGenre(context context.Context, genreSlug string) error {
	return service.repo.DeleteBySlug(context, genreSlug)
}
