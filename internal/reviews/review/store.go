// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package review

import (
	"context"

	"github.com/avolkov/critica/pkg/pagination"
)

// Repository abstracts persistent storage for reviews.
type Repository interface {
	ListByTitle(context context.Context, titleID int64, params pagination.Params) ([]Review, int, error)
	GetByID(context context.Context, titleID, reviewID int64) (*Review, error)
	ExistsForAuthor(context context.Context, titleID, authorID int64) (bool, error)
	Create(context context.Context, review *Review) error
	Update(context context.Context, review *Review) error
	Delete(context context.Context, reviewID int64) error
}
