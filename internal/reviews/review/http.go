// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package review

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

// RegisterRoutes mounts the review endpoints under a title route carrying
// the {title_id} parameter.
//
// Reads are public; posting requires authentication. Edit and delete are
// additionally policed by the service's ownership rules.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listReviews)
	router.Get("/{review_id}", handler.getReview)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createReview)
		r.Patch("/{review_id}", handler.updateReview)
		r.Delete("/{review_id}", handler.deleteReview)
	})
}

// # Request Payloads

type createReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.ListReviews(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("text", input.Text).
		Range("score", input.Score, MinScore, MaxScore)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := handler.actor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateReview(request.Context(), CreateInput{
		TitleID: titleID,
		Author:  actor,
		Text:    input.Text,
		Score:   input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required("text", *input.Text)
	}
	if input.Score != nil {
		validator.Range("score", *input.Score, MinScore, MaxScore)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := handler.actor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateReview(request.Context(), titleID, reviewID, actor, UpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := handler.actor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), titleID, reviewID, actor); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// pathIDs extracts the title and review identifiers from the route.
func (handler *Handler) pathIDs(request *http.Request) (int64, int64, error) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		return 0, 0, err
	}

	reviewID, err := requestutil.IntParam(request, "review_id")
	if err != nil {
		return 0, 0, err
	}

	return titleID, reviewID, nil
}

// actor builds the acting identity from the verified token claims.
func (handler *Handler) actor(request *http.Request) (Actor, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return Actor{}, err
	}

	return Actor{UserID: claims.UserID, Role: sec.UserRole(claims.Role)}, nil
}
