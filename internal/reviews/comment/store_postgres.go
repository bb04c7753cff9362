// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package comment

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

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID int64, params pagination.Params) ([]Comment, int, error) {
	const countQuery = `SELECT COUNT(*) FROM reviews.comment WHERE reviewid = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	const listQuery = `
		SELECT c.id, c.reviewid, c.authorid, u.username, c.text, c.pubdate
		FROM reviews.comment c
		JOIN users.account u ON c.authorid = u.id
		WHERE c.reviewid = $1
		ORDER BY c.pubdate ASC, c.id ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, listQuery, reviewID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, reviewID, commentID int64) (*Comment, error) {
	const query = `
		SELECT c.id, c.reviewid, c.authorid, u.username, c.text, c.pubdate
		FROM reviews.comment c
		JOIN users.account u ON c.authorid = u.id
		WHERE c.reviewid = $1 AND c.id = $2`

	c := &Comment{}
	err := repository.db.QueryRow(context, query, reviewID, commentID).Scan(
		&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO reviews.comment (reviewid, authorid, text, pubdate)
		VALUES ($1, $2, $3, $4)
		RETURNING id, (SELECT username FROM users.account WHERE id = $2)`

	comment.PubDate = time.Now()

	err := repository.db.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text, comment.PubDate).
		Scan(&comment.ID, &comment.Author)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	const query = `UPDATE reviews.comment SET text = $1 WHERE id = $2`

	tag, err := repository.db.Exec(context, query, comment.Text, comment.ID)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, commentID int64) error {
	const query = `DELETE FROM reviews.comment WHERE id = $1`

	tag, err := repository.db.Exec(context, query, commentID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
