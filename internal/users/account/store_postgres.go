// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

/*
Package account (Postgres) implements the storage layer for user administration.

# Schema Table Mapping
  - users.account: Master identity and profile data.
*/
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/database/schema"
	"github.com/avolkov/critica/internal/platform/dberr"
	"github.com/avolkov/critica/internal/users/auth"
	"github.com/avolkov/critica/pkg/pagination"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for user administration.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
List retrieves a page of user records, optionally filtered by username substring.

Parameters:
  - context: context.Context
  - search: Case-insensitive username fragment; empty matches all
  - params: Pagination window

Returns:
  - []auth.User: Page of users ordered by username
  - int: Total matching count
  - error: Database execution failure
*/
func (repository *PostgresAccountRepository) List(context context.Context, search string, params pagination.Params) ([]auth.User, int, error) {
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE $1 = '' OR %s ILIKE '%%' || $1 || '%%'`,
		schema.UserAccount.Table, schema.UserAccount.Username)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE $1 = '' OR %s ILIKE '%%' || $1 || '%%'
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
		schema.UserAccount.Role, schema.UserAccount.ConfirmationCode, schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.Username,
		schema.UserAccount.Username,
	)

	rows, err := repository.pool.Query(context, listQuery, search, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]auth.User, 0)
	for rows.Next() {
		user, err := scanAccount(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, *user)
	}

	return users, total, nil
}

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, userID int64) (*auth.User, error) {
	query := fmt.Sprintf(selectAccountByColumn, schema.UserAccount.ID)

	user, err := scanAccount(repository.pool.QueryRow(context, query, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}

	return user, nil
}

// FindByUsername retrieves a user record by its unique username.
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := fmt.Sprintf(selectAccountByColumn, schema.UserAccount.Username)

	user, err := scanAccount(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}

	return user, nil
}

/*
Create inserts a new user record and hydrates its generated ID.

Parameters:
  - context: context.Context
  - user: *auth.User (ID, CreatedAt, and UpdatedAt are set on success)

Returns:
  - error: apperr.Conflict on duplicate username/email, or execution failure
*/
func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FirstName,
		schema.UserAccount.LastName, schema.UserAccount.Bio, schema.UserAccount.Role,
		schema.UserAccount.ConfirmationCode, schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.ConfirmationCodeHash,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

/*
Update modifies the mutable profile metadata of a user.

Description: This method syncs the Email, FirstName, LastName, Bio, and Role
fields while refreshing the updatedat timestamp.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.NotFound when the user no longer exists, or execution failure
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Email, schema.UserAccount.FirstName, schema.UserAccount.LastName,
		schema.UserAccount.Bio, schema.UserAccount.Role, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
		user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// DeleteByUsername permanently removes a user and, through cascades, their
// reviews and comments.
func (repository *PostgresAccountRepository) DeleteByUsername(context context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Username)

	tag, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// selectAccountByColumn selects a full account row by a single column match.
// The column name is interpolated from schema constants, never user input.
var selectAccountByColumn = fmt.Sprintf(`
	SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
	FROM %s
	WHERE %%s = $1`,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
	schema.UserAccount.Role, schema.UserAccount.ConfirmationCode, schema.UserAccount.IsActive,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	schema.UserAccount.Table,
)

// scanAccount hydrates a user from a single row.
func scanAccount(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.ConfirmationCodeHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}
