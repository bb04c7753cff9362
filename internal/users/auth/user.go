// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

/*
Package auth implements the identity layer: signup, email confirmation, and
token issuance.

There are no passwords. A user signs up with a username and email, receives
a confirmation code by email, and exchanges that code for a JWT. Re-running
signup for the same identity simply issues a fresh code.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/avolkov/critica/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Critica platform.
type User struct {
	ID        int64        `json:"-"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`

	// ConfirmationCodeHash is the bcrypt hash of the last issued code.
	// It outlives the Redis copy so a user can still confirm after a cache
	// flush, at the cost of losing the TTL.
	ConfirmationCodeHash string `json:"-"`

	// IsActive flips to true on the first successful token exchange.
	IsActive bool `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
)
