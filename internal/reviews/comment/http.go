// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/critica/internal/platform/middleware"
	requestutil "github.com/avolkov/critica/internal/platform/request"
	"github.com/avolkov/critica/internal/platform/respond"
	"github.com/avolkov/critica/internal/platform/sec"
	"github.com/avolkov/critica/internal/platform/validate"
	"github.com/avolkov/critica/internal/reviews/review"
	"github.com/avolkov/critica/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the comment endpoints under a review route carrying
// the {title_id} and {review_id} parameters.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listComments)
	router.Get("/{comment_id}", handler.getComment)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createComment)
		r.Patch("/{comment_id}", handler.updateComment)
		r.Delete("/{comment_id}", handler.deleteComment)
	})
}

type commentRequest struct {
	Text string `json:"text"`
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.ListComments(request.Context(), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, actor, err := decodeCommentInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateComment(request.Context(), titleID, reviewID, actor, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, actor, err := decodeCommentInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateComment(request.Context(), titleID, reviewID, commentID, actor, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	actor := review.Actor{UserID: claims.UserID, Role: sec.UserRole(claims.Role)}

	if err := handler.service.DeleteComment(request.Context(), titleID, reviewID, commentID, actor); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// decodeCommentInput decodes and validates the comment body, plus the acting identity.
func decodeCommentInput(request *http.Request) (commentRequest, review.Actor, error) {
	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return input, review.Actor{}, err
	}

	validator := &validate.Validator{}
	validator.Required("text", input.Text)
	if err := validator.Err(); err != nil {
		return input, review.Actor{}, err
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return input, review.Actor{}, err
	}

	return input, review.Actor{UserID: claims.UserID, Role: sec.UserRole(claims.Role)}, nil
}

func reviewPathIDs(request *http.Request) (int64, int64, error) {
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

func commentPathIDs(request *http.Request) (int64, int64, int64, error) {
	titleID, reviewID, err := reviewPathIDs(request)
	if err != nil {
		return 0, 0, 0, err
	}

	commentID, err := requestutil.IntParam(request, "comment_id")
	if err != nil {
		return 0, 0, 0, err
	}

	return titleID, reviewID, commentID, nil
}
