// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/internal/users/auth"
	"github.com/avolkov/critica/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for user administration and profiles.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Roster Administration

// ListUsers returns a page of users, optionally filtered by a username search.
func (service *Service) ListUsers(context context.Context, search string, params pagination.Params) ([]auth.User, int, error) {
	return service.accountRepository.List(context, search, params)
}

// GetUser returns a single user by username.
func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

// CreateUserInput holds the data an admin supplies when creating a user directly.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      sec.UserRole
}

/*
CreateUser registers a user on behalf of an admin.

Description: Admin-created accounts skip the confirmation flow entirely; they
are active immediately and carry whatever role the admin assigned.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *auth.User: Created account
  - error: Conflict on duplicate username/email, or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*auth.User, error) {
	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	user := &auth.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
		IsActive:  true,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("account_service_create_user_failed: %w", err)
	}

	return user, nil
}

// UpdateUserInput defines the mutable subset of account fields. Nil fields
// are left untouched.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *sec.UserRole
}

/*
UpdateUser applies a partial set of changes to a user's account.

Description: Fetches the existing user state, overlays provided fields, and
synchronizes the change to persistent storage. Role changes are accepted
here; the self-service path strips them before calling.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateUserInput

Returns:
  - *auth.User: Updated account
  - error: NotFound, invalid role, or storage errors
*/
func (service *Service) UpdateUser(context context.Context, username string, input UpdateUserInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperr.ValidationError(fmt.Sprintf("Unknown role %q", *input.Role))
		}
		user.Role = *input.Role
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_user_failed: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user by username. Their reviews and comments are
// removed by the cascade on authorid.
func (service *Service) DeleteUser(context context.Context, username string) error {
	return service.accountRepository.DeleteByUsername(context, username)
}

// # Self Service

// GetProfile retrieves the authenticated user's own account.
func (service *Service) GetProfile(context context.Context, userID int64) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

/*
UpdateProfile applies a partial update to the caller's own account.

Description: The role field is deliberately absent from the input: a user can
never promote themselves. Everything else follows [UpdateUser].

Parameters:
  - context: context.Context
  - userID: int64
  - input: UpdateUserInput (Role is ignored)

Returns:
  - *auth.User: Updated account
  - error: NotFound or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, userID int64, input UpdateUserInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Drop any role change before reusing the shared update path.
	input.Role = nil

	return service.UpdateUser(context, user.Username, input)
}
