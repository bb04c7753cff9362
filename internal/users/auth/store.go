// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository abstracts persistent storage of user identities.
type UserRepository interface {
	Create(context context.Context, user *User) error
	FindByUsername(context context.Context, username string) (*User, error)
	FindByEmail(context context.Context, email string) (*User, error)
	SetConfirmationCode(context context.Context, userID int64, codeHash string) error
	Activate(context context.Context, userID int64) error
}

// CodeRepository abstracts the short-lived confirmation code cache.
//
// The cache keeps the bcrypt hash of the last issued code per username;
// issuing a new code overwrites the previous entry.
type CodeRepository interface {
	Set(context context.Context, username, codeHash string, timeToLive time.Duration) error
	Get(context context.Context, username string) (string, error)
	Delete(context context.Context, username string) error
}
