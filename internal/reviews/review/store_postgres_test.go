//go:build integration

// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

// Store-level test for the one-review-per-title constraint backstop.
//
// Run with: go test -tags integration
// Requires DATABASE_URL pointing at a throwaway Postgres instance.
package review

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/migration"
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

/*
TestCreate_DuplicateAuthorConstraint verifies the storage-level backstop for
concurrent inserts: a second review by the same author for the same title is
rejected by the unique constraint and mapped to the same conflict the service
pre-check produces.
*/
func TestCreate_DuplicateAuthorConstraint(t *testing.T) {
	pool := setupPool(t)
	repository := NewPostgresRepository(pool)
	ctx := context.Background()

	var authorID int64
	err := pool.QueryRow(ctx, `
		INSERT INTO users.account (username, email, role, isactive)
		VALUES ('alice', 'alice@example.com', 'user', TRUE)
		RETURNING id`).Scan(&authorID)
	require.NoError(t, err)

	var titleID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO catalog.title (name, year) VALUES ('Solaris', 1972)
		RETURNING id`).Scan(&titleID)
	require.NoError(t, err)

	first := &Review{TitleID: titleID, AuthorID: authorID, Text: "fine", Score: 7}
	require.NoError(t, repository.Create(ctx, first))

	second := &Review{TitleID: titleID, AuthorID: authorID, Text: "changed my mind", Score: 3}
	err = repository.Create(ctx, second)

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	assert.Equal(t, "You have already reviewed this title", appErr.Message)
}
