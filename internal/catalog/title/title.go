// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

/*
Package title manages the works that users review.

A title is a single reviewable work (a book, a film, an album). It belongs to
at most one category, carries any number of genres, and exposes a computed
rating derived from its reviews.

Architecture:

  - Service: Orchestrates slug resolution and partial updates.
  - Repository: Postgres-backed storage with filterable listing.
  - Rating: Computed in SQL at read time, never stored.
*/
package title

import (
	"time"

	"github.com/avolkov/critica/internal/catalog/category"
	"github.com/avolkov/critica/internal/catalog/genre"
)

// Title is a single reviewable work in the catalog.
type Title struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Year        int     `json:"year"`
	Description *string `json:"description"`

	// Rating is the truncated average review score, or null when the title
	// has no reviews yet.
	Rating *int `json:"rating"`

	Category *category.Category `json:"category"`
	Genres   []genre.Genre      `json:"genre"`

	CategoryID *int64    `json:"-"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// Filter narrows a title listing. Zero values mean "no constraint".
type Filter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}
