// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package comment

import (
	"context"

	"github.com/avolkov/critica/pkg/pagination"
)

// Repository abstracts persistent storage for comments.
type Repository interface {
	ListByReview(context context.Context, reviewID int64, params pagination.Params) ([]Comment, int, error)
	GetByID(context context.Context, reviewID, commentID int64) (*Comment, error)
	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, commentID int64) error
}
