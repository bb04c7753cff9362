//go:build integration

// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

// Store-level tests that exercise the computed rating column and the
// category-delete cascade against a real database.
//
// Run with: go test -tags integration
// Requires DATABASE_URL pointing at a throwaway Postgres instance; tests
// truncate all domain tables between runs.
package title

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/catalog/category"
	"github.com/avolkov/critica/internal/platform/migration"
	"github.com/avolkov/critica/pkg/pagination"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", logger))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `
		TRUNCATE reviews.comment, reviews.review, catalog.genretitle,
			catalog.title, catalog.genre, catalog.category, users.account
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

// seedReviewer inserts an active account directly and returns its ID.
func seedReviewer(t *testing.T, pool *pgxpool.Pool, username string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO users.account (username, email, role, isactive)
		VALUES ($1, $1 || '@example.com', 'user', TRUE)
		RETURNING id`, username).Scan(&id)
	require.NoError(t, err)

	return id
}

func seedReview(t *testing.T, pool *pgxpool.Pool, titleID, authorID int64, score int) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		INSERT INTO reviews.review (titleid, authorid, text, score)
		VALUES ($1, $2, 'seeded', $3)`, titleID, authorID, score)
	require.NoError(t, err)
}

/*
TestRatingAggregation pins the rating semantics of title reads:

  - the rating is the integer truncation of the review score average,
    never a rounding (3.5 reads as 3);
  - a title without reviews reads as rating null, not zero.
*/
func TestRatingAggregation(t *testing.T) {
	pool := setupPool(t)
	repository := NewPostgresRepository(pool)
	ctx := context.Background()

	alice := seedReviewer(t, pool, "alice")
	bob := seedReviewer(t, pool, "bob")
	carol := seedReviewer(t, pool, "carol")

	rated := &Title{Name: "Solaris", Year: 1972}
	require.NoError(t, repository.Create(ctx, rated, nil))
	seedReview(t, pool, rated.ID, alice, 4)
	seedReview(t, pool, rated.ID, bob, 6)
	seedReview(t, pool, rated.ID, carol, 8)

	truncated := &Title{Name: "Stalker", Year: 1979}
	require.NoError(t, repository.Create(ctx, truncated, nil))
	seedReview(t, pool, truncated.ID, alice, 3)
	seedReview(t, pool, truncated.ID, bob, 4)

	unrated := &Title{Name: "Mirror", Year: 1975}
	require.NoError(t, repository.Create(ctx, unrated, nil))

	got, err := repository.GetByID(ctx, rated.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 6, *got.Rating)

	got, err = repository.GetByID(ctx, truncated.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	// average is 3.5; truncation reads 3 where rounding would read 4
	assert.Equal(t, 3, *got.Rating)

	got, err = repository.GetByID(ctx, unrated.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
}

// TestListRatingAggregation asserts the page query computes the same rating
// column as single reads.
func TestListRatingAggregation(t *testing.T) {
	pool := setupPool(t)
	repository := NewPostgresRepository(pool)
	ctx := context.Background()

	alice := seedReviewer(t, pool, "alice")

	rated := &Title{Name: "Solaris", Year: 1972}
	require.NoError(t, repository.Create(ctx, rated, nil))
	seedReview(t, pool, rated.ID, alice, 7)

	unrated := &Title{Name: "Mirror", Year: 1975}
	require.NoError(t, repository.Create(ctx, unrated, nil))

	titles, total, err := repository.List(ctx, Filter{}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, titles, 2)

	require.NotNil(t, titles[0].Rating)
	assert.Equal(t, 7, *titles[0].Rating)
	assert.Nil(t, titles[1].Rating)
}

// TestDeleteCategoryDetachesTitles asserts that removing a category leaves
// its titles in place with the category reference cleared.
func TestDeleteCategoryDetachesTitles(t *testing.T) {
	pool := setupPool(t)
	titles := NewPostgresRepository(pool)
	categories := category.NewPostgresRepository(pool)
	ctx := context.Background()

	movies := &category.Category{Name: "Movies", Slug: "movies"}
	require.NoError(t, categories.Create(ctx, movies))

	created := &Title{Name: "Solaris", Year: 1972, CategoryID: &movies.ID}
	require.NoError(t, titles.Create(ctx, created, nil))

	require.NoError(t, categories.DeleteBySlug(ctx, "movies"))

	got, err := titles.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)
}
