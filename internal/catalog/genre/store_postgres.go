// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/database/schema"
	"github.com/avolkov/critica/internal/platform/dberr"
	"github.com/avolkov/critica/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, search string, params pagination.Params) ([]Genre, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE $1 = '' OR %s ILIKE '%%' || $1 || '%%'`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	var total int
	if err := repository.db.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s
		WHERE $1 = '' OR %s ILIKE '%%' || $1 || '%%'
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.Name)

	rows, err := repository.db.Query(context, listQuery, search, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]Genre, 0)
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, slug).Scan(&g.ID, &g.Name, &g.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_slug")
	}

	return g, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.ID)

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID)
	if err != nil {
		return dberr.Wrap(err, "create_genre")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}
