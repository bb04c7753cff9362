// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

/*
HTTP delivery layer for user administration and self-service profiles.

# Security

The roster endpoints require the admin role; the /me endpoints only require
an authenticated session. Both sets sit behind the Authenticate middleware
mounted by the server.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/critica/internal/platform/middleware"
	requestutil "github.com/avolkov/critica/internal/platform/request"
	"github.com/avolkov/critica/internal/platform/respond"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/internal/platform/validate"
	"github.com/avolkov/critica/internal/users/auth"
	"github.com/avolkov/critica/pkg/pagination"
)

// Handler implements the HTTP layer for user management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the users domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self service. Registered before the {username} routes so "me" is never
	// swallowed as a username parameter.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
	})

	// Roster administration
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/", handler.listUsers)
		r.Post("/", handler.createUser)
		r.Get("/{username}", handler.getUser)
		r.Patch("/{username}", handler.updateUser)
		r.Delete("/{username}", handler.deleteUser)
	})

	return router
}

// # Request Payloads

type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// # Roster Endpoints

/*
GET /api/v1/users.

Description: Returns a paginated user roster, optionally filtered by a
username search.

Response:
  - 200: []auth.User with pagination metadata
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.ListUsers(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/users.

Description: Creates an account directly, bypassing email confirmation.

Request:
  - Body: createUserRequest

Response:
  - 201: auth.User: Created account
  - 400: Validation failure
  - 409: ErrConflict: Username or email already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		Username(auth.FieldUsername, input.Username).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email)
	if input.Role != "" {
		validator.OneOf(auth.FieldRole, input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateUser(request.Context(), CreateUserInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.GetUser(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	input, err := decodeUpdate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.UpdateUser(request.Context(), username, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.DeleteUser(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self-Service Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: auth.User: The caller's account
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.
A role field in the payload is silently ignored.

Request:
  - Body: updateUserRequest (Partial JSON)

Response:
  - 200: auth.User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeUpdate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.UpdateProfile(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// decodeUpdate decodes and validates a partial account update payload.
func decodeUpdate(request *http.Request) (UpdateUserInput, error) {
	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return UpdateUserInput{}, err
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}
	if input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	if err := validator.Err(); err != nil {
		return UpdateUserInput{}, err
	}

	out := UpdateUserInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		out.Role = &role
	}

	return out, nil
}
