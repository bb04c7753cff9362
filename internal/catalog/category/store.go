// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package category

import (
	"context"

	"github.com/avolkov/critica/pkg/pagination"
)

// Repository abstracts persistent storage for categories.
type Repository interface {
	List(context context.Context, search string, params pagination.Params) ([]Category, int, error)
	GetBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, category *Category) error
	DeleteBySlug(context context.Context, slug string) error
}
