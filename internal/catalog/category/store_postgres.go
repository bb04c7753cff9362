// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package category

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

func (repository *PostgresRepository) List(context context.Context, search string, params pagination.Params) ([]Category, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE $1 = '' OR %s ILIKE '%%' || $1 || '%%'`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Name)

	var total int
	if err := repository.db.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s
		WHERE $1 = '' OR %s ILIKE '%%' || $1 || '%%'
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.Table, schema.CatalogCategory.Name, schema.CatalogCategory.Name)

	rows, err := repository.db.Query(context, listQuery, search, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	c := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.ID)

	err := repository.db.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		return dberr.Wrap(err, "create_category")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}
