// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

// Storage layer for titles.
//
// # Rating
//
// The rating column does not exist in the database; every read computes it
// as TRUNC(AVG(score)) over the title's reviews, yielding NULL for titles
// without reviews.
package title

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/critica/internal/catalog/category"
	"github.com/avolkov/critica/internal/catalog/genre"
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

// listFilterClause is shared between the count and page queries so the two
// can never disagree on what matches.
const listFilterClause = `
	FROM catalog.title t
	LEFT JOIN catalog.category c ON t.categoryid = c.id
	WHERE ($1 = '' OR c.slug = $1)
	  AND ($2 = '' OR EXISTS (
			SELECT 1 FROM catalog.genretitle gt
			JOIN catalog.genre g ON gt.genreid = g.id
			WHERE gt.titleid = t.id AND g.slug = $2))
	  AND ($3 = '' OR t.name ILIKE '%' || $3 || '%')
	  AND ($4 = 0 OR t.year = $4)`

const ratingSubquery = `(SELECT TRUNC(AVG(r.score))::int FROM reviews.review r WHERE r.titleid = t.id)`

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]Title, int, error) {
	countQuery := `SELECT COUNT(*)` + listFilterClause

	var total int
	err := repository.db.QueryRow(context, countQuery,
		filter.CategorySlug, filter.GenreSlug, filter.Name, filter.Year).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	listQuery := fmt.Sprintf(`
		SELECT t.id, t.name, t.year, t.description, t.categoryid,
		       %s AS rating,
		       c.name, c.slug
		%s
		ORDER BY t.id ASC
		LIMIT $5 OFFSET $6`, ratingSubquery, listFilterClause)

	rows, err := repository.db.Query(context, listQuery,
		filter.CategorySlug, filter.GenreSlug, filter.Name, filter.Year,
		params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]Title, 0)
	titleIDs := make([]int64, 0)

	for rows.Next() {
		var t Title
		var categoryName, categorySlug *string

		err := rows.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &t.CategoryID,
			&t.Rating, &categoryName, &categorySlug)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}

		if t.CategoryID != nil {
			t.Category = &category.Category{ID: *t.CategoryID, Name: *categoryName, Slug: *categorySlug}
		}
		t.Genres = make([]genre.Genre, 0)

		titles = append(titles, t)
		titleIDs = append(titleIDs, t.ID)
	}
	rows.Close()

	if err := repository.attachGenres(context, titles, titleIDs); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Title, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.year, t.description, t.categoryid,
		       %s AS rating,
		       c.name, c.slug
		FROM catalog.title t
		LEFT JOIN catalog.category c ON t.categoryid = c.id
		WHERE t.id = $1`, ratingSubquery)

	t := &Title{}
	var categoryName, categorySlug *string

	err := repository.db.QueryRow(context, query, id).Scan(
		&t.ID, &t.Name, &t.Year, &t.Description, &t.CategoryID,
		&t.Rating, &categoryName, &categorySlug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_title_by_id")
	}

	if t.CategoryID != nil {
		t.Category = &category.Category{ID: *t.CategoryID, Name: *categoryName, Slug: *categorySlug}
	}
	t.Genres = make([]genre.Genre, 0)

	titles := []Title{*t}
	if err := repository.attachGenres(context, titles, []int64{t.ID}); err != nil {
		return nil, err
	}

	return &titles[0], nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title, genreIDs []int64) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_title_begin")
	}
	defer tx.Rollback(context)

	now := time.Now()
	title.CreatedAt = now
	title.UpdatedAt = now

	const insertQuery = `
		INSERT INTO catalog.title (name, year, description, categoryid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err = tx.QueryRow(context, insertQuery,
		title.Name, title.Year, title.Description, title.CategoryID,
		title.CreatedAt, title.UpdatedAt).Scan(&title.ID)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	for _, genreID := range genreIDs {
		_, err := tx.Exec(context,
			`INSERT INTO catalog.genretitle (titleid, genreid) VALUES ($1, $2)`,
			title.ID, genreID)
		if err != nil {
			return dberr.Wrap(err, "create_title_genre")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "create_title_commit")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, genreIDs []int64, replaceGenres bool) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_title_begin")
	}
	defer tx.Rollback(context)

	title.UpdatedAt = time.Now()

	const updateQuery = `
		UPDATE catalog.title
		SET name = $1, year = $2, description = $3, categoryid = $4, updatedat = $5
		WHERE id = $6`

	tag, err := tx.Exec(context, updateQuery,
		title.Name, title.Year, title.Description, title.CategoryID,
		title.UpdatedAt, title.ID)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if replaceGenres {
		_, err := tx.Exec(context, `DELETE FROM catalog.genretitle WHERE titleid = $1`, title.ID)
		if err != nil {
			return dberr.Wrap(err, "update_title_clear_genres")
		}

		for _, genreID := range genreIDs {
			_, err := tx.Exec(context,
				`INSERT INTO catalog.genretitle (titleid, genreid) VALUES ($1, $2)`,
				title.ID, genreID)
			if err != nil {
				return dberr.Wrap(err, "update_title_genre")
			}
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "update_title_commit")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	tag, err := repository.db.Exec(context, `DELETE FROM catalog.title WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}

// attachGenres loads the genre sets for a page of titles in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []Title, titleIDs []int64) error {
	if len(titleIDs) == 0 {
		return nil
	}

	const query = `
		SELECT gt.titleid, g.id, g.name, g.slug
		FROM catalog.genretitle gt
		JOIN catalog.genre g ON gt.genreid = g.id
		WHERE gt.titleid = ANY($1)
		ORDER BY g.name ASC`

	rows, err := repository.db.Query(context, query, titleIDs)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	byID := make(map[int64]*Title, len(titles))
	for i := range titles {
		byID[titles[i].ID] = &titles[i]
	}

	for rows.Next() {
		var titleID int64
		var g genre.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}

		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}

	return nil
}
