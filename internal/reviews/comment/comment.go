// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

// Package comment implements threadless comments on reviews.
//
// Comments are plain text replies attached to a single review. They follow
// the same ownership policy as reviews: authors mutate their own comments,
// moderators and admins mutate any.
package comment

import "time"

// Comment is a reply to a review.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}
