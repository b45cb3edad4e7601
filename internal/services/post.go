package services

//go:generate mockgen -source=post.go -destination=mock_post.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/common"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PostReader defines post read operations used by services.
type PostReader interface {
	List(ctx context.Context, filter models.PostFilter) ([]models.PostDB, int, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.PostDB, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PostDB, error)
}

// PostWriter defines post write operations used by services.
type PostWriter interface {
	Save(ctx context.Context, post *models.PostDB) (*models.PostDB, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.PostDB, error)
	Update(ctx context.Context, id uuid.UUID, patch models.PostPatch) (*models.PostDB, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.PostDB, error)
}

// PostService handles blog post operations.
type PostService struct {
	reader    PostReader
	writer    PostWriter
	publisher *eventPublisher
}

// NewPostService creates a new service instance. kafkaWriter may be nil.
func NewPostService(reader PostReader, writer PostWriter, kafkaWriter KafkaWriter) *PostService {
	return &PostService{
		reader:    reader,
		writer:    writer,
		publisher: newEventPublisher(kafkaWriter),
	}
}

// Create stores a new post written by authorID.
func (svc *PostService) Create(ctx context.Context, authorID uuid.UUID, title, description, content string) (*models.Post, error) {
	if err := validatePost(title, description, content); err != nil {
		return nil, err
	}

	saved, err := svc.writer.Save(ctx, &models.PostDB{
		PostID:      uuid.New(),
		AuthorID:    authorID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Content:     strings.TrimSpace(content),
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to save post", "author_id", authorID, "error", err)
		return nil, err
	}

	svc.publisher.publish(ctx, models.EventPostCreated, saved.PostID, authorID)
	return saved.Public(), nil
}

// List returns one page of posts, newest first. Zero page or limit selects
// the default; limit is capped at MaxLimit. An empty authorID lists every author.
func (svc *PostService) List(ctx context.Context, page, limit int, authorID string) ([]*models.Post, models.Pagination, error) {
	errs := fieldErrors{}
	if page < 0 {
		errs["page"] = "Page must be a positive integer"
	}
	if limit < 0 {
		errs["limit"] = "Limit must be a positive integer"
	}
	if err := errs.err(); err != nil {
		return nil, models.Pagination{}, err
	}

	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// page*limit must fit in an int for the offset and pagination math
	if page > math.MaxInt/limit {
		return nil, models.Pagination{}, &ValidationError{Fields: map[string]string{"page": "Page is out of range"}}
	}

	filter := models.PostFilter{Limit: limit, Offset: (page - 1) * limit}
	if authorID = strings.TrimSpace(authorID); authorID != "" {
		id, err := uuid.Parse(authorID)
		if err != nil {
			return nil, models.Pagination{}, ErrInvalidID
		}
		filter.AuthorID = &id
	}

	rows, total, err := svc.reader.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list posts", "page", page, "limit", limit, "error", err)
		return nil, models.Pagination{}, err
	}

	return toPublic(rows), models.NewPagination(page, limit, total), nil
}

// GetByID returns a single post.
func (svc *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	postID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrInvalidID
	}

	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		return nil, svc.notFound(ctx, err, "failed to get post", postID)
	}
	return post.Public(), nil
}

// ListByAuthor returns every post written by authorID, newest first.
func (svc *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	id, err := uuid.Parse(strings.TrimSpace(authorID))
	if err != nil {
		return nil, ErrInvalidID
	}

	rows, err := svc.reader.ListByAuthor(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list author posts", "author_id", id, "error", err)
		return nil, err
	}
	return toPublic(rows), nil
}

// Update applies patch to a post owned by accountID.
func (svc *PostService) Update(ctx context.Context, accountID uuid.UUID, id string, patch models.PostPatch) (*models.Post, error) {
	postID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrInvalidID
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	if err := svc.authorize(ctx, accountID, postID); err != nil {
		return nil, err
	}

	updated, err := svc.writer.Update(ctx, postID, trimPatch(patch))
	if err != nil {
		return nil, svc.notFound(ctx, err, "failed to update post", postID)
	}

	svc.publisher.publish(ctx, models.EventPostUpdated, postID, accountID)
	return updated.Public(), nil
}

// Delete removes a post owned by accountID and returns it.
func (svc *PostService) Delete(ctx context.Context, accountID uuid.UUID, id string) (*models.Post, error) {
	postID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrInvalidID
	}

	if err := svc.authorize(ctx, accountID, postID); err != nil {
		return nil, err
	}

	deleted, err := svc.writer.Delete(ctx, postID)
	if err != nil {
		return nil, svc.notFound(ctx, err, "failed to delete post", postID)
	}

	svc.publisher.publish(ctx, models.EventPostDeleted, postID, accountID)
	return deleted.Public(), nil
}

// authorize locks the post row and checks that accountID wrote it.
func (svc *PostService) authorize(ctx context.Context, accountID, postID uuid.UUID) error {
	current, err := svc.writer.GetForUpdate(ctx, postID)
	if err != nil {
		return svc.notFound(ctx, err, "failed to lock post", postID)
	}
	if current.AuthorID != accountID {
		logger.FromContext(ctx).Infow("post ownership check failed", "post_id", postID, "account_id", accountID)
		return ErrForbidden
	}
	return nil
}

func (svc *PostService) notFound(ctx context.Context, err error, msg string, postID uuid.UUID) error {
	if errors.Is(err, common.ErrNotFound) {
		return ErrPostNotFound
	}
	logger.FromContext(ctx).Errorw(msg, "post_id", postID, "error", err)
	return fmt.Errorf("%s: %w", strings.TrimPrefix(msg, "failed to "), err)
}

func toPublic(rows []models.PostDB) []*models.Post {
	posts := make([]*models.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].Public())
	}
	return posts
}
