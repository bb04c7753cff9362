// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/constants"
	"github.com/avolkov/critica/internal/platform/mail"
	"github.com/avolkov/critica/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID int64, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token-exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code issuance or
// token exchange logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	codeRepository CodeRepository
	tokenProvider  TokenProvider
	mailer         mail.Mailer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo CodeRepository,
	tokenProv TokenProvider,
	mailer mail.Mailer,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		tokenProvider:  tokenProv,
		mailer:         mailer,
	}
}

// # Signup Flow

// SignupInput holds the identity pair used to enroll or re-confirm a member.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup enrolls a new user, or reissues a confirmation code for an existing one.

Description: Signup is idempotent on the (username, email) pair. Repeating it
for a known identity sends a fresh code rather than failing, so a user who
lost the first email can simply sign up again.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: The enrolled (or existing) user
  - error: ValidationError when the username is taken under a different email,
    Conflict when the email belongs to another username, or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {

	// Look up the username first: it decides between enrollment and re-issue.
	existing, err := service.userRepository.FindByUsername(context, input.Username)
	switch {
	case err == nil:
		// Known username. The email must match the registered one, otherwise
		// someone is trying to claim a taken username.
		if existing.Email != input.Email {
			return nil, apperr.ValidationError("Email does not match the registered account")
		}

		if err := service.issueConfirmationCode(context, existing); err != nil {
			return nil, err
		}

		return existing, nil
	case !apperr.IsNotFound(err):
		// A storage failure must not fall through to the create path, where it
		// would surface as a misleading conflict.
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// Unknown username. The email must be free too.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	user := &User{
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
		IsActive: false,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	if err := service.issueConfirmationCode(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Token Exchange

/*
IssueToken exchanges a confirmation code for a JWT access token.

Description: Verifies the code against the cached hash (falling back to the
persisted hash if the cache entry expired), activates the account on first
use, and signs an access token carrying the user's role.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - string: Signed JWT access token
  - error: NotFound for an unknown username, ValidationError for a bad code
*/
func (service *Service) IssueToken(context context.Context, username, code string) (string, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return "", apperr.NotFound("User")
	}

	// Prefer the cached hash: it carries the TTL. The persisted copy covers
	// cache flushes.
	codeHash, err := service.codeRepository.Get(context, username)
	if err != nil {
		codeHash = user.ConfirmationCodeHash
	}

	if codeHash == "" || !sec.CheckConfirmationCode(code, codeHash) {
		return "", apperr.ValidationError("Invalid confirmation code")
	}

	if !user.IsActive {
		if err := service.userRepository.Activate(context, user.ID); err != nil {
			return "", fmt.Errorf("auth_service_activate_failed: %w", err)
		}
	}

	// The code is single-use per issue: drop the cached copy.
	_ = service.codeRepository.Delete(context, username)

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return accessToken, nil
}

// issueConfirmationCode generates, stores, and emails a fresh confirmation code.
//
// The bcrypt hash lands in both Redis (with TTL, last-issued-wins) and the
// user row; the plain code only ever travels by email.
func (service *Service) issueConfirmationCode(context context.Context, user *User) error {
	code, err := sec.GenerateConfirmationCode(constants.ConfirmationCodeLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_code_failed: %w", err)
	}

	codeHash, err := sec.HashConfirmationCode(code)
	if err != nil {
		return fmt.Errorf("auth_service_hash_code_failed: %w", err)
	}

	if err := service.codeRepository.Set(context, user.Username, codeHash, constants.ConfirmationCodeTTL); err != nil {
		return fmt.Errorf("auth_service_cache_code_failed: %w", err)
	}

	if err := service.userRepository.SetConfirmationCode(context, user.ID, codeHash); err != nil {
		return fmt.Errorf("auth_service_persist_code_failed: %w", err)
	}
	user.ConfirmationCodeHash = codeHash

	body := fmt.Sprintf(confirmationBody, code)
	if err := service.mailer.Send(context, user.Email, confirmationSubject, body); err != nil {
		return fmt.Errorf("auth_service_send_code_failed: %w", err)
	}

	return nil
}
