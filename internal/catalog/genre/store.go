// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package genre

import (
	"context"

	"github.com/avolkov/critica/pkg/pagination"
)

// Repository abstracts persistent storage for genres.
type Repository interface {
	List(context context.Context, search string, params pagination.Params) ([]Genre, int, error)
	GetBySlug(context context.Context, slug string) (*Genre, error)
	Create(context context.Context, genre *Genre) error
	DeleteBySlug(context context.Context, slug string) error
}
