// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package account

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/internal/users/auth"
	"github.com/avolkov/critica/pkg/pagination"
	"github.com/avolkov/critica/pkg/pointer"
)

// # Test Fakes

type fakeAccountRepository struct {
	users  map[int64]*auth.User
	nextID int64
}

func (f *fakeAccountRepository) List(_ context.Context, _ string, _ pagination.Params) ([]auth.User, int, error) {
	out := make([]auth.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeAccountRepository) FindByID(_ context.Context, userID int64) (*auth.User, error) {
	if u, ok := f.users[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeAccountRepository) Create(_ context.Context, user *auth.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeAccountRepository) DeleteByUsername(_ context.Context, username string) error {
	for id, u := range f.users {
		if u.Username == username {
			delete(f.users, id)
			return nil
		}
	}
	return apperr.NotFound("User")
}

func newTestService() (*Service, *fakeAccountRepository) {
	repo := &fakeAccountRepository{users: make(map[int64]*auth.User)}
	return NewService(repo, slog.Default()), repo
}

// # Tests

/*
TestCreateUser_AdminPath verifies that admin-created accounts are active
immediately and default to the user role.
*/
func TestCreateUser_AdminPath(t *testing.T) {
	service, _ := newTestService()

	user, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "reader",
		Email:    "reader@example.com",
	})

	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Equal(t, sec.RoleUser, user.Role)

	moderator, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     sec.RoleModerator,
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, moderator.Role)
}

/*
TestUpdateUser_RoleChange verifies that the admin path accepts role changes
and rejects unknown roles.
*/
func TestUpdateUser_RoleChange(t *testing.T) {
	service, repo := newTestService()
	repo.users[1] = &auth.User{ID: 1, Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	repo.nextID = 1

	role := sec.RoleModerator
	updated, err := service.UpdateUser(context.Background(), "reader", UpdateUserInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)

	bogus := sec.UserRole("superuser")
	_, err = service.UpdateUser(context.Background(), "reader", UpdateUserInput{Role: &bogus})
	require.Error(t, err)
	assert.Equal(t, sec.RoleModerator, repo.users[1].Role)
}

/*
TestUpdateProfile_RoleImmutable verifies that the self-service path strips
role changes even if a caller smuggles one into the payload.
*/
func TestUpdateProfile_RoleImmutable(t *testing.T) {
	service, repo := newTestService()
	repo.users[1] = &auth.User{ID: 1, Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	repo.nextID = 1

	role := sec.RoleAdmin
	updated, err := service.UpdateProfile(context.Background(), 1, UpdateUserInput{
		Bio:  pointer.To("I review things."),
		Role: &role,
	})

	require.NoError(t, err)
	assert.Equal(t, "I review things.", updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role)
}

/*
TestDeleteUser verifies removal by username.
*/
func TestDeleteUser(t *testing.T) {
	service, repo := newTestService()
	repo.users[1] = &auth.User{ID: 1, Username: "reader"}
	repo.nextID = 1

	require.NoError(t, service.DeleteUser(context.Background(), "reader"))
	assert.Empty(t, repo.users)

	err := service.DeleteUser(context.Background(), "reader")
	assert.True(t, apperr.IsNotFound(err))
}
