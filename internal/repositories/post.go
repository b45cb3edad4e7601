package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-blog/internal/common"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

const postColumns = `p.post_id, p.user_id, u.username, p.title, p.description, p.content, p.created_at, p.updated_at`

// PostReadRepository handles post read operations
type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// List returns one page of posts, newest first, and the total number of
// posts matching the filter.
func (r *PostReadRepository) List(ctx context.Context, filter models.PostFilter) ([]models.PostDB, int, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE ($1::UUID IS NULL OR p.user_id = $1)
		ORDER BY p.created_at DESC, p.post_id
		LIMIT $2 OFFSET $3
	`
	const countQuery = `
		SELECT COUNT(*)
		FROM posts
		WHERE ($1::UUID IS NULL OR user_id = $1)
	`

	var author any
	if filter.AuthorID != nil {
		author = *filter.AuthorID
	}

	posts := []models.PostDB{}
	err := r.db.SelectContext(ctx, &posts, query, author, filter.Limit, filter.Offset)

	logger.FromContext(ctx).Debugw("db query",
		"query", oneLine(query),
		"args", []any{author, filter.Limit, filter.Offset},
		"result", len(posts),
		"error", err,
	)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.GetContext(ctx, &total, countQuery, author)

	logger.FromContext(ctx).Debugw("db query",
		"query", oneLine(countQuery),
		"args", []any{author},
		"result", total,
		"error", err,
	)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// ListByAuthor returns every post written by authorID, newest first.
func (r *PostReadRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.PostDB, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.post_id
	`

	posts := []models.PostDB{}
	err := r.db.SelectContext(ctx, &posts, query, authorID)

	logger.FromContext(ctx).Debugw("db query",
		"query", oneLine(query),
		"args", []any{authorID},
		"result", len(posts),
		"error", err,
	)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID returns a single post or common.ErrNotFound.
func (r *PostReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PostDB, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.post_id = $1
	`

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, id)

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
	return &post, nil
}

// PostWriteRepository handles post write operations. When the request
// context carries a transaction, statements run inside it.
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPostWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

func (r *PostWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}
	return executor
}

// getOne runs a query returning one joined post row.
func (r *PostWriteRepository) getOne(ctx context.Context, query string, args ...any) (*models.PostDB, error) {
	var post models.PostDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &post, query, args...)

	logger.FromContext(ctx).Debugw("db query",
		"query", oneLine(query),
		"args", args,
		"found", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Save inserts a post and returns the stored row with its author username.
func (r *PostWriteRepository) Save(ctx context.Context, post *models.PostDB) (*models.PostDB, error) {
	const query = `
		WITH inserted AS (
			INSERT INTO posts (post_id, user_id, title, description, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING post_id, user_id, title, description, content, created_at, updated_at
		)
		SELECT ` + postColumns + `
		FROM inserted p
		JOIN users u ON u.user_id = p.user_id
	`

	saved, err := r.getOne(ctx, query, post.PostID, post.AuthorID, post.Title, post.Description, post.Content)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return saved, nil
}

// GetForUpdate reads a post and locks its row until the surrounding
// transaction ends.
func (r *PostWriteRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.PostDB, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.post_id = $1
		FOR UPDATE OF p
	`
	return r.getOne(ctx, query, id)
}

// Update applies the non-nil fields of patch to the post.
func (r *PostWriteRepository) Update(ctx context.Context, id uuid.UUID, patch models.PostPatch) (*models.PostDB, error) {
	const query = `
		WITH updated AS (
			UPDATE posts
			SET title = COALESCE($2, title),
			    description = COALESCE($3, description),
			    content = COALESCE($4, content),
			    updated_at = NOW()
			WHERE post_id = $1
			RETURNING post_id, user_id, title, description, content, created_at, updated_at
		)
		SELECT ` + postColumns + `
		FROM updated p
		JOIN users u ON u.user_id = p.user_id
	`
	return r.getOne(ctx, query, id, nullable(patch.Title), nullable(patch.Description), nullable(patch.Content))
}

// Delete removes the post and returns the deleted row.
func (r *PostWriteRepository) Delete(ctx context.Context, id uuid.UUID) (*models.PostDB, error) {
	const query = `
		WITH deleted AS (
			DELETE FROM posts
			WHERE post_id = $1
			RETURNING post_id, user_id, title, description, content, created_at, updated_at
		)
		SELECT ` + postColumns + `
		FROM deleted p
		JOIN users u ON u.user_id = p.user_id
	`
	return r.getOne(ctx, query, id)
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
