package services_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/common"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	validTitle       = "Hello world"
	validDescription = "A short first post"
	validContent     = strings.Repeat("lorem ipsum ", 5)
)

func newPostService(t *testing.T) (*services.PostService, *services.MockPostReader, *services.MockPostWriter) {
	ctrl := gomock.NewController(t)
	reader := services.NewMockPostReader(ctrl)
	writer := services.NewMockPostWriter(ctrl)
	return services.NewPostService(reader, writer, nil), reader, writer
}

func strPtr(s string) *string { return &s }

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc, _, writer := newPostService(t)

		writer.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *models.PostDB) (*models.PostDB, error) {
				assert.Equal(t, authorID, p.AuthorID)
				assert.Equal(t, validTitle, p.Title)
				saved := *p
				saved.AuthorUsername = "alice"
				return &saved, nil
			})

		post, err := svc.Create(ctx, authorID, "  "+validTitle+"  ", validDescription, validContent)
		require.NoError(t, err)
		assert.Equal(t, "alice", post.Author.Username)
		assert.Equal(t, authorID, post.Author.ID)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, err := svc.Create(ctx, authorID, "hi", "short", "tiny")
		ve, ok := services.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"content", "description", "title"}, keys(ve.Fields))
	})

	t.Run("title too long", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, err := svc.Create(ctx, authorID, strings.Repeat("t", 201), validDescription, validContent)
		ve, ok := services.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"title"}, keys(ve.Fields))
	})

	t.Run("store failure", func(t *testing.T) {
		svc, _, writer := newPostService(t)

		writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

		_, err := svc.Create(ctx, authorID, validTitle, validDescription, validContent)
		assert.EqualError(t, err, "db error")
	})
}

func TestPostService_LogsCarryRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	defer func() { logger.Log = prev }()

	svc, reader, _ := newPostService(t)
	reader.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("db error"))

	ctx := logger.ContextWithRequestID(context.Background(), "req-7")
	_, _, err := svc.List(ctx, 1, 10, "")
	require.EqualError(t, err, "db error")

	entries := logs.FilterMessage("failed to list posts").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
}

func TestPostService_List(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	rows := []models.PostDB{{PostID: uuid.New(), AuthorID: authorID, AuthorUsername: "alice"}}

	tests := []struct {
		name       string
		page       int
		limit      int
		author     string
		wantFilter models.PostFilter
		total      int
		wantPage   models.Pagination
	}{
		{
			name:       "defaults",
			wantFilter: models.PostFilter{Limit: 10, Offset: 0},
			total:      25,
			wantPage:   models.Pagination{CurrentPage: 1, TotalPages: 3, TotalBlogs: 25, HasNext: true, HasPrev: false},
		},
		{
			name:       "second page",
			page:       2,
			limit:      5,
			wantFilter: models.PostFilter{Limit: 5, Offset: 5},
			total:      10,
			wantPage:   models.Pagination{CurrentPage: 2, TotalPages: 2, TotalBlogs: 10, HasNext: false, HasPrev: true},
		},
		{
			name:       "limit capped",
			page:       1,
			limit:      1000,
			wantFilter: models.PostFilter{Limit: 100, Offset: 0},
			total:      1,
			wantPage:   models.Pagination{CurrentPage: 1, TotalPages: 1, TotalBlogs: 1},
		},
		{
			name:       "author filter",
			author:     authorID.String(),
			wantFilter: models.PostFilter{AuthorID: &authorID, Limit: 10},
			total:      1,
			wantPage:   models.Pagination{CurrentPage: 1, TotalPages: 1, TotalBlogs: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, reader, _ := newPostService(t)

			reader.EXPECT().List(gomock.Any(), tt.wantFilter).Return(rows, tt.total, nil)

			posts, page, err := svc.List(ctx, tt.page, tt.limit, tt.author)
			require.NoError(t, err)
			assert.Len(t, posts, 1)
			assert.Equal(t, tt.wantPage, page)
		})
	}

	t.Run("negative page", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, _, err := svc.List(ctx, -1, 10, "")
		_, ok := services.AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("page beyond int range", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, _, err := svc.List(ctx, math.MaxInt/5, 10, "")
		ve, ok := services.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "Page is out of range", ve.Fields["page"])
	})

	t.Run("largest page in range", func(t *testing.T) {
		svc, reader, _ := newPostService(t)
		page := math.MaxInt / 10

		reader.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter models.PostFilter) ([]models.PostDB, int, error) {
				assert.GreaterOrEqual(t, filter.Offset, 0)
				return nil, 0, nil
			})

		posts, pagination, err := svc.List(ctx, page, 10, "")
		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.False(t, pagination.HasNext)
	})

	t.Run("malformed author", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, _, err := svc.List(ctx, 1, 10, "abc")
		assert.ErrorIs(t, err, services.ErrInvalidID)
	})
}

func TestPostService_GetByID(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc, reader, _ := newPostService(t)
		reader.EXPECT().GetByID(gomock.Any(), postID).Return(&models.PostDB{PostID: postID, Title: validTitle}, nil)

		post, err := svc.GetByID(ctx, postID.String())
		require.NoError(t, err)
		assert.Equal(t, validTitle, post.Title)
	})

	t.Run("not found", func(t *testing.T) {
		svc, reader, _ := newPostService(t)
		reader.EXPECT().GetByID(gomock.Any(), postID).Return(nil, common.ErrNotFound)

		_, err := svc.GetByID(ctx, postID.String())
		assert.ErrorIs(t, err, services.ErrPostNotFound)
	})

	t.Run("malformed", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, err := svc.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, services.ErrInvalidID)
	})
}

func TestPostService_ListByAuthor(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	svc, reader, _ := newPostService(t)
	reader.EXPECT().ListByAuthor(gomock.Any(), authorID).Return([]models.PostDB{}, nil)

	posts, err := svc.ListByAuthor(ctx, authorID.String())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	_, err = svc.ListByAuthor(ctx, "")
	assert.ErrorIs(t, err, services.ErrInvalidID)
}

func TestPostService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	postID := uuid.New()
	current := &models.PostDB{PostID: postID, AuthorID: ownerID, Title: validTitle}

	t.Run("owner updates present fields", func(t *testing.T) {
		svc, _, writer := newPostService(t)

		gomock.InOrder(
			writer.EXPECT().GetForUpdate(gomock.Any(), postID).Return(current, nil),
			writer.EXPECT().Update(gomock.Any(), postID, models.PostPatch{Title: strPtr("New title")}).
				Return(&models.PostDB{PostID: postID, AuthorID: ownerID, Title: "New title"}, nil),
		)

		post, err := svc.Update(ctx, ownerID, postID.String(), models.PostPatch{Title: strPtr(" New title ")})
		require.NoError(t, err)
		assert.Equal(t, "New title", post.Title)
	})

	t.Run("other account is forbidden", func(t *testing.T) {
		svc, _, writer := newPostService(t)

		writer.EXPECT().GetForUpdate(gomock.Any(), postID).Return(current, nil)

		_, err := svc.Update(ctx, uuid.New(), postID.String(), models.PostPatch{Title: strPtr("New title")})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("empty patch", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, err := svc.Update(ctx, ownerID, postID.String(), models.PostPatch{})
		_, ok := services.AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("invalid present field", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, err := svc.Update(ctx, ownerID, postID.String(), models.PostPatch{Content: strPtr("short")})
		ve, ok := services.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"content"}, keys(ve.Fields))
	})

	t.Run("missing post", func(t *testing.T) {
		svc, _, writer := newPostService(t)

		writer.EXPECT().GetForUpdate(gomock.Any(), postID).Return(nil, common.ErrNotFound)

		_, err := svc.Update(ctx, ownerID, postID.String(), models.PostPatch{Title: strPtr("New title")})
		assert.ErrorIs(t, err, services.ErrPostNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		svc, _, writer := newPostService(t)

		writer.EXPECT().GetForUpdate(gomock.Any(), postID).Return(current, nil)
		writer.EXPECT().Update(gomock.Any(), postID, gomock.Any()).Return(nil, errors.New("db error"))

		_, err := svc.Update(ctx, ownerID, postID.String(), models.PostPatch{Title: strPtr("New title")})
		assert.EqualError(t, err, "update post: db error")
	})
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	postID := uuid.New()
	current := &models.PostDB{PostID: postID, AuthorID: ownerID}

	t.Run("owner deletes", func(t *testing.T) {
		svc, _, writer := newPostService(t)

		writer.EXPECT().GetForUpdate(gomock.Any(), postID).Return(current, nil)
		writer.EXPECT().Delete(gomock.Any(), postID).Return(current, nil)

		post, err := svc.Delete(ctx, ownerID, postID.String())
		require.NoError(t, err)
		assert.Equal(t, postID, post.ID)
	})

	t.Run("other account is forbidden", func(t *testing.T) {
		svc, _, writer := newPostService(t)

		writer.EXPECT().GetForUpdate(gomock.Any(), postID).Return(current, nil)

		_, err := svc.Delete(ctx, uuid.New(), postID.String())
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _, _ := newPostService(t)

		_, err := svc.Delete(ctx, ownerID, "x")
		assert.ErrorIs(t, err, services.ErrInvalidID)
	})
}
