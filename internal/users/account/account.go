// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

/*
Package account handles user administration and self-service profile management.

Admins manage the full user roster, including role assignment; every
authenticated user can read and edit their own profile through the /users/me
endpoints.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Policy: Roster operations are admin-only; /me is self-scoped and can
    never change the caller's own role.
*/
package account

import (
	"context"

	"github.com/avolkov/critica/internal/users/auth"
	"github.com/avolkov/critica/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user administration.
type AccountRepository interface {
	List(context context.Context, search string, params pagination.Params) ([]auth.User, int, error)
	FindByID(context context.Context, userID int64) (*auth.User, error)
	FindByUsername(context context.Context, username string) (*auth.User, error)
	Create(context context.Context, user *auth.User) error
	Update(context context.Context, user *auth.User) error
	DeleteByUsername(context context.Context, username string) error
}
