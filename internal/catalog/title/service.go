// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avolkov/critica/internal/catalog/category"
	"github.com/avolkov/critica/internal/catalog/genre"
	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/pkg/pagination"
)

// # Contracts & Types

// CategoryResolver resolves category slugs supplied by API clients.
type CategoryResolver interface {
	GetBySlug(context context.Context, slug string) (*category.Category, error)
}

// GenreResolver resolves genre slugs supplied by API clients.
type GenreResolver interface {
	GetBySlug(context context.Context, slug string) (*genre.Genre, error)
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	genres     GenreResolver
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryResolver, genres GenreResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

// # Read Path

// ListTitles returns a filtered page of titles with their computed ratings.
func (service *Service) ListTitles(context context.Context, filter Filter, params pagination.Params) ([]Title, int, error) {
	return service.repo.List(context, filter, params)
}

// GetTitle returns a single title with category, genres and rating attached.
func (service *Service) GetTitle(context context.Context, id int64) (*Title, error) {
	return service.repo.GetByID(context, id)
}

// # Write Path

// CreateInput holds the data required to register a new title.
type CreateInput struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug string
	GenreSlugs   []string
}

/*
CreateTitle validates references and persists a new title.

Description: Category and genre slugs are resolved against the catalog first,
so a dangling slug fails the whole request before anything is written.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: Created entity with references attached
  - error: Validation failure on unknown slugs, or storage errors
*/
func (service *Service) CreateTitle(context context.Context, input CreateInput) (*Title, error) {
	newTitle := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Genres:      make([]genre.Genre, 0),
	}

	if input.CategorySlug != "" {
		resolved, err := service.categories.GetBySlug(context, input.CategorySlug)
		if err != nil {
			return nil, apperr.ValidationError(fmt.Sprintf("Unknown category %q", input.CategorySlug))
		}
		newTitle.Category = resolved
		newTitle.CategoryID = &resolved.ID
	}

	genreIDs, resolvedGenres, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	newTitle.Genres = resolvedGenres

	if err := service.repo.Create(context, newTitle, genreIDs); err != nil {
		return nil, err
	}

	return newTitle, nil
}

// UpdateInput holds a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

/*
UpdateTitle applies a partial update to an existing title.

Description: Fetches the current state, overlays the provided fields, and
persists the result. Passing a genre list replaces the full set of genres.

Parameters:
  - context: context.Context
  - id: int64
  - input: UpdateInput

Returns:
  - *Title: Updated entity
  - error: NotFound, validation failure on unknown slugs, or storage errors
*/
func (service *Service) UpdateTitle(context context.Context, id int64, input UpdateInput) (*Title, error) {
	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Year != nil {
		existing.Year = *input.Year
	}
	if input.Description != nil {
		existing.Description = input.Description
	}
	if input.CategorySlug != nil {
		resolved, err := service.categories.GetBySlug(context, *input.CategorySlug)
		if err != nil {
			return nil, apperr.ValidationError(fmt.Sprintf("Unknown category %q", *input.CategorySlug))
		}
		existing.Category = resolved
		existing.CategoryID = &resolved.ID
	}

	var genreIDs []int64
	replaceGenres := input.GenreSlugs != nil
	if replaceGenres {
		ids, resolvedGenres, err := service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		genreIDs = ids
		existing.Genres = resolvedGenres
	}

	if err := service.repo.Update(context, existing, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteTitle removes a title along with its reviews and comments (cascade).
func (service *Service) DeleteTitle(context context.Context, id int64) error {
	return service.repo.Delete(context, id)
}

// resolveGenres maps genre slugs to catalog IDs, failing on the first unknown slug.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]int64, []genre.Genre, error) {
	ids := make([]int64, 0, len(slugs))
	resolved := make([]genre.Genre, 0, len(slugs))

	for _, genreSlug := range slugs {
		g, err := service.genres.GetBySlug(context, genreSlug)
		if err != nil {
			return nil, nil, apperr.ValidationError(fmt.Sprintf("Unknown genre %q", genreSlug))
		}
		ids = append(ids, g.ID)
		resolved = append(resolved, *g)
	}

	return ids, resolved, nil
}
