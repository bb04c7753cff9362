// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/critica/internal/platform/middleware"
	requestutil "github.com/avolkov/critica/internal/platform/request"
	"github.com/avolkov/critica/internal/platform/respond"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/internal/platform/validate"
	"github.com/avolkov/critica/pkg/convert"
	"github.com/avolkov/critica/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the title endpoints.
//
// Reads are public; mutations require the admin role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTitles)
	router.Get("/{title_id}", handler.getTitle)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.createTitle)
		r.Patch("/{title_id}", handler.updateTitle)
		r.Delete("/{title_id}", handler.deleteTitle)
	})
}

// # Request Payloads

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
listTitles returns a filtered, paginated title listing.

GET /api/v1/titles

Query parameters:
  - category: Filter by category slug
  - genre: Filter by genre slug
  - name: Case-insensitive substring match on the title name
  - year: Exact release year
*/
func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
		Year:         convert.ToInt(query.Get("year")),
	}

	titles, total, err := handler.service.ListTitles(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetTitle(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name).
		MaxLen("name", input.Name, 256).
		YearNotFuture("year", input.Year)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateTitle(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required("name", *input.Name).MaxLen("name", *input.Name, 256)
	}
	if input.Year != nil {
		validator.YearNotFuture("year", *input.Year)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateTitle(request.Context(), titleID, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTitle(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
