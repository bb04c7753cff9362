// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/critica/internal/platform/middleware"
	requestutil "github.com/avolkov/critica/internal/platform/request"
	"github.com/avolkov/critica/internal/platform/respond"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/internal/platform/validate"
	"github.com/avolkov/critica/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the category endpoints.
//
// Reads are public; mutations require the admin role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCategories)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.createCategory)
		r.Delete("/{slug}", handler.deleteCategory)
	})
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.service.ListCategories(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name).
		MaxLen("name", input.Name, 256).
		MaxLen("slug", input.Slug, 50)
	if input.Slug != "" {
		validator.Slug("slug", input.Slug)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := &Category{Name: input.Name, Slug: input.Slug}
	if err := handler.service.CreateCategory(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categorySlug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteCategory(request.Context(), categorySlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
