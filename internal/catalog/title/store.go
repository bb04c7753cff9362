// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package title

import (
	"context"

	"github.com/avolkov/critica/pkg/pagination"
)

// Repository abstracts persistent storage for titles.
type Repository interface {
	List(context context.Context, filter Filter, params pagination.Params) ([]Title, int, error)
	GetByID(context context.Context, id int64) (*Title, error)
	Create(context context.Context, title *Title, genreIDs []int64) error
	Update(context context.Context, title *Title, genreIDs []int64, replaceGenres bool) error
	Delete(context context.Context, id int64) error
}
