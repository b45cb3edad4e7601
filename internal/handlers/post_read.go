package handlers

//go:generate mockgen -source=post_read.go -destination=mock_post_read.go -package=handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// PostLister lists posts page by page.
type PostLister interface {
	List(ctx context.Context, page, limit int, authorID string) ([]*models.Post, models.Pagination, error)
}

// PostGetter fetches a single post.
type PostGetter interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
}

// AuthorPostLister lists every post of one author.
type AuthorPostLister interface {
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
}

// NewListPostsHandler returns an HTTP handler for the post listing.
// @Summary List posts
// @Description Returns one page of posts, newest first
// @Tags blog
// @Produce json
// @Param page query int false "Page number, 1 based" default(1)
// @Param limit query int false "Page size, at most 100" default(10)
// @Param userID query string false "Only posts by this account"
// @Success 200 {object} models.Response{data=[]models.Post,pagination=models.Pagination} "Posts"
// @Failure 400 {object} models.Response "Invalid query"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /blog [get]
func NewListPostsHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		errs := map[string]string{}

		page, ok := parseQueryInt(query.Get("page"))
		if !ok {
			errs["page"] = "Page must be a positive integer"
		}
		limit, ok := parseQueryInt(query.Get("limit"))
		if !ok {
			errs["limit"] = "Limit must be a positive integer"
		}
		if len(errs) > 0 {
			writeError(w, http.StatusBadRequest, "Validation failed", errs)
			return
		}

		posts, pagination, err := svc.List(r.Context(), page, limit, query.Get("userID"))
		if err != nil {
			writePostError(r.Context(), w, err, http.StatusBadRequest, "failed to list posts")
			return
		}

		writeJSON(w, http.StatusOK, models.Response{
			Success:    true,
			Data:       posts,
			Pagination: &pagination,
		})
	}
}

// parseQueryInt parses an optional query integer; absent values are 0.
func parseQueryInt(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// NewGetPostHandler returns an HTTP handler for a single post.
// @Summary Get post
// @Tags blog
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} models.Response{data=models.Post} "Post"
// @Failure 400 {object} models.Response "Invalid id"
// @Failure 404 {object} models.Response "Post not found"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /blog/{id} [get]
func NewGetPostHandler(svc PostGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writePostError(r.Context(), w, err, http.StatusBadRequest, "failed to get post")
			return
		}
		writeSuccess(w, http.StatusOK, "", post)
	}
}

// NewListAuthorPostsHandler returns an HTTP handler listing one author's posts.
// @Summary List posts by author
// @Tags blog
// @Produce json
// @Param id path string true "Author account id"
// @Success 200 {object} models.Response{data=[]models.Post} "Posts"
// @Failure 400 {object} models.Response "Invalid id"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /blog/user/{id} [get]
// @Router /blog/getuserblogs/{id} [get]
// @Security BearerAuth
func NewListAuthorPostsHandler(svc AuthorPostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListByAuthor(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writePostError(r.Context(), w, err, http.StatusBadRequest, "failed to list author posts")
			return
		}
		writeSuccess(w, http.StatusOK, "", posts)
	}
}
