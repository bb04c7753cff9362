// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

/*
Package category manages the catalog's category reference data.

A category classifies a title by the kind of work it is ("Books", "Films",
"Music"). Categories are flat reference data: admins curate them, everyone
else reads them.
*/
package category

// Category groups titles by the kind of work they represent.
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
