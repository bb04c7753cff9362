// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/dberr"
)

/*
TestWrap tests the mapping of low-level database errors to application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no_rows_maps_to_not_found", pgx.ErrNoRows, http.StatusNotFound},
		{"unique_violation_maps_to_conflict", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict},
		{"fk_violation_maps_to_bad_request", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusBadRequest},
		{"unknown_error_maps_to_internal", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")

			appErr := apperr.As(wrapped)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
		})
	}
}

func TestWrap_NilPassesThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "test_action"))
}

/*
TestIsUniqueViolation tests constraint-scoped detection of unique violations,
including errors wrapped further up the call chain.
*/
func TestIsUniqueViolation(t *testing.T) {
	reviewConstraint := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "review_unique_author_title",
	}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"matching_constraint", reviewConstraint, "review_unique_author_title", true},
		{"any_constraint", reviewConstraint, "", true},
		{"different_constraint", reviewConstraint, "account_username_key", false},
		{"wrapped_error", fmt.Errorf("create_review: %w", reviewConstraint), "review_unique_author_title", true},
		{"not_a_unique_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "", false},
		{"not_a_pg_error", errors.New("connection reset"), "", false},
		{"nil_error", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dberr.IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
