// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package review

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/dberr"
	"github.com/avolkov/critica/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int64, params pagination.Params) ([]Review, int, error) {
	const countQuery = `SELECT COUNT(*) FROM reviews.review WHERE titleid = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	const listQuery = `
		SELECT r.id, r.titleid, r.authorid, u.username, r.text, r.score, r.pubdate
		FROM reviews.review r
		JOIN users.account u ON r.authorid = u.id
		WHERE r.titleid = $1
		ORDER BY r.pubdate ASC, r.id ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, listQuery, titleID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		var r Review
		err := rows.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, titleID, reviewID int64) (*Review, error) {
	const query = `
		SELECT r.id, r.titleid, r.authorid, u.username, r.text, r.score, r.pubdate
		FROM reviews.review r
		JOIN users.account u ON r.authorid = u.id
		WHERE r.titleid = $1 AND r.id = $2`

	r := &Review{}
	err := repository.db.QueryRow(context, query, titleID, reviewID).Scan(
		&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review_by_id")
	}

	return r, nil
}

func (repository *PostgresRepository) ExistsForAuthor(context context.Context, titleID, authorID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM reviews.review WHERE titleid = $1 AND authorid = $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists_for_author")
	}

	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO reviews.review (titleid, authorid, text, score, pubdate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, (SELECT username FROM users.account WHERE id = $2)`

	review.PubDate = time.Now()

	err := repository.db.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score, review.PubDate).
		Scan(&review.ID, &review.Author)
	if err != nil {
		// The service pre-checks, but a concurrent insert can still lose the
		// race to the one-review-per-title constraint.
		if dberr.IsUniqueViolation(err, "review_unique_author_title") {
			return apperr.Conflict("You have already reviewed this title")
		}
		return dberr.Wrap(err, "create_review")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	const query = `UPDATE reviews.review SET text = $1, score = $2 WHERE id = $3`

	tag, err := repository.db.Exec(context, query, review.Text, review.Score, review.ID)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID int64) error {
	const query = `DELETE FROM reviews.review WHERE id = $1`

	tag, err := repository.db.Exec(context, query, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}
