package handlers

//go:generate mockgen -source=post_write.go -destination=mock_post_write.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// PostCreator stores new posts.
type PostCreator interface {
	Create(ctx context.Context, authorID uuid.UUID, title, description, content string) (*models.Post, error)
}

// PostUpdater applies partial updates to posts.
type PostUpdater interface {
	Update(ctx context.Context, accountID uuid.UUID, id string, patch models.PostPatch) (*models.Post, error)
}

// PostDeleter removes posts.
type PostDeleter interface {
	Delete(ctx context.Context, accountID uuid.UUID, id string) (*models.Post, error)
}

// NewCreatePostHandler returns an HTTP handler for creating posts.
// The author is the authenticated account.
// @Summary Create post
// @Tags blog
// @Accept json
// @Produce json
// @Param createPostRequest body models.CreatePostRequest true "Post"
// @Success 201 {object} models.Response{data=models.Post} "Created post"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 422 {object} models.Response "Validation failed"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /blog [post]
// @Security BearerAuth
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := currentAccountID(w, r)
		if !ok {
			return
		}

		var req models.CreatePostRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Validation failed", errBadBody)
			return
		}

		post, err := svc.Create(r.Context(), accountID, req.Title, req.Description, req.Content)
		if err != nil {
			writePostError(r.Context(), w, err, http.StatusUnprocessableEntity, "failed to create post")
			return
		}

		writeSuccess(w, http.StatusCreated, "Blog post created successfully", post)
	}
}

// NewUpdatePostHandler returns an HTTP handler for partial post updates.
// @Summary Update post
// @Description Updates the fields present in the body. Only the author may update a post.
// @Tags blog
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param updatePostRequest body models.UpdatePostRequest true "Fields to change"
// @Success 200 {object} models.Response{data=models.Post} "Updated post"
// @Failure 400 {object} models.Response "Invalid id"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 403 {object} models.Response "Not the author"
// @Failure 404 {object} models.Response "Post not found"
// @Failure 422 {object} models.Response "Validation failed"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /blog/{id} [put]
// @Security BearerAuth
func NewUpdatePostHandler(svc PostUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := currentAccountID(w, r)
		if !ok {
			return
		}

		var req models.UpdatePostRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Validation failed", errBadBody)
			return
		}

		post, err := svc.Update(r.Context(), accountID, chi.URLParam(r, "id"), req.Patch())
		if err != nil {
			writePostError(r.Context(), w, err, http.StatusUnprocessableEntity, "failed to update post")
			return
		}

		writeSuccess(w, http.StatusOK, "Blog post updated successfully", post)
	}
}

// NewDeletePostHandler returns an HTTP handler for deleting posts.
// @Summary Delete post
// @Description Only the author may delete a post
// @Tags blog
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} models.Response{data=models.Post} "Deleted post"
// @Failure 400 {object} models.Response "Invalid id"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 403 {object} models.Response "Not the author"
// @Failure 404 {object} models.Response "Post not found"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /blog/{id} [delete]
// @Security BearerAuth
func NewDeletePostHandler(svc PostDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := currentAccountID(w, r)
		if !ok {
			return
		}

		post, err := svc.Delete(r.Context(), accountID, chi.URLParam(r, "id"))
		if err != nil {
			writePostError(r.Context(), w, err, http.StatusUnprocessableEntity, "failed to delete post")
			return
		}

		writeSuccess(w, http.StatusOK, "Blog post deleted successfully", post)
	}
}
