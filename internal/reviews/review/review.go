// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

/*
Package review implements user reviews of catalog titles.

Every review carries a text body and a score from 1 to 10; the title's
rating is aggregated from these scores. A user may review a given title at
most once.

Architecture:

  - Service: Enforces the one-review-per-title rule and ownership policy.
  - Repository: Postgres storage joined with the author's account.
  - Policy: Authors mutate their own reviews; moderators and admins mutate any.
*/
package review

import "time"

// Review is a user's scored opinion of a single title.
type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 10
)
