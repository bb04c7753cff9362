// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/sec"
)

// # Test Fakes

type fakeUserRepository struct {
	users   map[string]*User // keyed by username
	nextID  int64
	findErr error // injected into lookups to simulate storage failure
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) SetConfirmationCode(_ context.Context, userID int64, codeHash string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.ConfirmationCodeHash = codeHash
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (f *fakeUserRepository) Activate(_ context.Context, userID int64) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.IsActive = true
			return nil
		}
	}
	return apperr.NotFound("User")
}

type fakeCodeRepository struct {
	hashes map[string]string
}

func (f *fakeCodeRepository) Set(_ context.Context, username, codeHash string, _ time.Duration) error {
	f.hashes[username] = codeHash
	return nil
}

func (f *fakeCodeRepository) Get(_ context.Context, username string) (string, error) {
	if h, ok := f.hashes[username]; ok {
		return h, nil
	}
	return "", apperr.NotFound("Confirmation code is invalid or expired")
}

func (f *fakeCodeRepository) Delete(_ context.Context, username string) error {
	delete(f.hashes, username)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID int64, username, role string, _ time.Duration) (string, error) {
	return "signed-token-for-" + username, nil
}

// fakeMailer records sent messages and extracts the confirmation code from
// the body so tests can complete the exchange flow.
type fakeMailer struct {
	sent     int
	lastTo   string
	lastCode string
}

func (f *fakeMailer) Send(_ context.Context, to, _ string, body string) error {
	f.sent++
	f.lastTo = to

	for _, line := range strings.Split(body, "\n") {
		if rest, found := strings.CutPrefix(line, "Your confirmation code is: "); found {
			f.lastCode = rest
		}
	}

	return nil
}

func newTestService() (*Service, *fakeUserRepository, *fakeCodeRepository, *fakeMailer) {
	users := &fakeUserRepository{users: make(map[string]*User)}
	codes := &fakeCodeRepository{hashes: make(map[string]string)}
	mailer := &fakeMailer{}
	service := NewService(users, codes, fakeTokenProvider{}, mailer)
	return service, users, codes, mailer
}

// # Signup Tests

/*
TestSignup_NewUser verifies enrollment: the user is stored inactive with the
default role and a confirmation code is emailed.
*/
func TestSignup_NewUser(t *testing.T) {
	service, users, codes, mailer := newTestService()

	user, err := service.Signup(context.Background(), SignupInput{
		Username: "reader",
		Email:    "reader@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.IsActive)
	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, "reader@example.com", mailer.lastTo)
	assert.NotEmpty(t, mailer.lastCode)
	assert.NotEmpty(t, codes.hashes["reader"])
	assert.NotEmpty(t, users.users["reader"].ConfirmationCodeHash)
}

/*
TestSignup_Repeat verifies idempotency: repeating signup for the same identity
pair reissues a code instead of failing, and creates no second account.
*/
func TestSignup_Repeat(t *testing.T) {
	service, users, _, mailer := newTestService()

	_, err := service.Signup(context.Background(), SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)
	firstCode := mailer.lastCode

	_, err = service.Signup(context.Background(), SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	assert.Len(t, users.users, 1)
	assert.Equal(t, 2, mailer.sent)
	assert.NotEqual(t, firstCode, mailer.lastCode)
}

/*
TestSignup_EmailMismatch verifies that a taken username with a different email
is rejected with a validation error.
*/
func TestSignup_EmailMismatch(t *testing.T) {
	service, _, _, mailer := newTestService()

	_, err := service.Signup(context.Background(), SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), SignupInput{Username: "reader", Email: "other@example.com"})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, 1, mailer.sent)
}

/*
TestSignup_EmailTaken verifies that an email registered to another username
is a conflict.
*/
func TestSignup_EmailTaken(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Signup(context.Background(), SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), SignupInput{Username: "other", Email: "reader@example.com"})
	assert.True(t, apperr.IsConflict(err))
}

/*
TestSignup_LookupFailure verifies that a storage failure during the username
lookup surfaces as an internal error instead of falling through to the create
path, where it would read as a conflict.
*/
func TestSignup_LookupFailure(t *testing.T) {
	service, users, _, mailer := newTestService()

	users.findErr = errors.New("connection reset")

	_, err := service.Signup(context.Background(), SignupInput{
		Username: "reader",
		Email:    "reader@example.com",
	})

	require.Error(t, err)
	assert.Nil(t, apperr.As(err))
	assert.Empty(t, users.users)
	assert.Equal(t, 0, mailer.sent)
}

// # Token Exchange Tests

/*
TestIssueToken_Flow verifies the full happy path: signup, then exchange the
emailed code for a token, activating the account.
*/
func TestIssueToken_Flow(t *testing.T) {
	service, users, codes, mailer := newTestService()

	_, err := service.Signup(context.Background(), SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	token, err := service.IssueToken(context.Background(), "reader", mailer.lastCode)
	require.NoError(t, err)
	assert.Equal(t, "signed-token-for-reader", token)
	assert.True(t, users.users["reader"].IsActive)

	// The cached code is consumed.
	_, err = codes.Get(context.Background(), "reader")
	assert.Error(t, err)
}

/*
TestIssueToken_UnknownUser verifies the 404 on an unknown username.
*/
func TestIssueToken_UnknownUser(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.IssueToken(context.Background(), "ghost", "whatever")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestIssueToken_WrongCode verifies that a wrong code is a validation error,
not a 404 and not an activation.
*/
func TestIssueToken_WrongCode(t *testing.T) {
	service, users, _, _ := newTestService()

	_, err := service.Signup(context.Background(), SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	_, err = service.IssueToken(context.Background(), "reader", "not-the-code")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.False(t, users.users["reader"].IsActive)
}

/*
TestIssueToken_PersistedHashFallback verifies that the exchange still works
after the cached code entry expires, using the persisted hash.
*/
func TestIssueToken_PersistedHashFallback(t *testing.T) {
	service, _, codes, mailer := newTestService()

	_, err := service.Signup(context.Background(), SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	// Simulate cache expiry.
	require.NoError(t, codes.Delete(context.Background(), "reader"))

	token, err := service.IssueToken(context.Background(), "reader", mailer.lastCode)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
