// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

// Package genre manages the catalog's genre reference data.
//
// A genre tags a title with its style ("Fantasy", "Rock", "Arthouse").
// A title may carry several genres at once.
package genre

// Genre tags titles with a stylistic classification.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
