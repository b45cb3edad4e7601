package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-blog/internal/common"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// pgUniqueViolation is the SQLSTATE of unique_violation.
const pgUniqueViolation = "23505"

// uniqueConstraintFields maps unique indexes to the account field they guard.
var uniqueConstraintFields = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
}

// translateWriteError turns a unique violation into a typed
// common.ConstraintViolationError and leaves other errors untouched.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}

	field, ok := uniqueConstraintFields[pgErr.ConstraintName]
	if !ok {
		field = pgErr.ColumnName
	}
	return &common.ConstraintViolationError{Field: field, Constraint: pgErr.ConstraintName}
}

func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// AccountReadRepository handles account read operations
type AccountReadRepository struct {
	db *sqlx.DB
}

func NewAccountReadRepository(db *sqlx.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

// GetByID returns the account with the given id or common.ErrNotFound.
func (r *AccountReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AccountDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var account models.AccountDB
	err := r.db.GetContext(ctx, &account, query, id)

	logger.FromContext(ctx).Debugw("db query",
		"query", oneLine(query),
		"args", []any{id},
		"found", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetByLogin returns the account whose username (case-insensitive) or
// email matches login. A username match wins over an email match.
func (r *AccountReadRepository) GetByLogin(ctx context.Context, login string) (*models.AccountDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE LOWER(username) = LOWER($1) OR email = LOWER($1)
		ORDER BY (LOWER(username) = LOWER($1)) DESC
		LIMIT 1
	`

	var account models.AccountDB
	err := r.db.GetContext(ctx, &account, query, login)

	logger.FromContext(ctx).Debugw("db query",
		"query", oneLine(query),
		"args", []any{login},
		"found", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// AccountWriteRepository handles account write operations
type AccountWriteRepository struct {
	db *sqlx.DB
}

func NewAccountWriteRepository(db *sqlx.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Save inserts a new account and fills in its timestamps. Uniqueness is
// enforced by the users unique indexes; a violation is reported as
// *common.ConstraintViolationError.
func (r *AccountWriteRepository) Save(ctx context.Context, account *models.AccountDB) error {
	const query = `
		INSERT INTO users (user_id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		account.AccountID, account.Username, account.Email, account.PasswordHash,
	).Scan(&account.CreatedAt, &account.UpdatedAt)

	// password_hash is never logged
	logger.FromContext(ctx).Debugw("db query",
		"query", oneLine(query),
		"args", []any{account.AccountID, account.Username, account.Email},
		"error", err,
	)

	if err != nil {
		err = translateWriteError(err)
		if _, ok := common.AsConstraintViolation(err); ok {
			return err
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}
