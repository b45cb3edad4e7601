package models

import (
	"time"

	"github.com/google/uuid"
)

// PostDB represents a post row joined with its author's username.
type PostDB struct {
	PostID         uuid.UUID `db:"post_id"`     // Primary key
	AuthorID       uuid.UUID `db:"user_id"`     // Owning account
	AuthorUsername string    `db:"username"`    // Author username from users
	Title          string    `db:"title"`       // Post title
	Description    string    `db:"description"` // Short summary
	Content        string    `db:"content"`     // Body
	CreatedAt      time.Time `db:"created_at"`  // Creation timestamp
	UpdatedAt      time.Time `db:"updated_at"`  // Last update timestamp
}

// PostAuthor is the author reference embedded in a post.
// swagger:model PostAuthor
type PostAuthor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Post is the outward representation of a blog post.
// swagger:model Post
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Author      PostAuthor `json:"author"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Public converts the row into its outward representation.
func (p *PostDB) Public() *Post {
	return &Post{
		ID:          p.PostID,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		Author: PostAuthor{
			ID:       p.AuthorID,
			Username: p.AuthorUsername,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PostPatch carries the fields of a partial post update. Nil fields are left untouched.
type PostPatch struct {
	Title       *string
	Description *string
	Content     *string
}

// Empty reports whether the patch changes nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Content == nil
}

// PostFilter selects a page of posts.
type PostFilter struct {
	AuthorID *uuid.UUID
	Limit    int
	Offset   int
}

// Pagination describes the position of a page in a listing.
// swagger:model Pagination
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalBlogs  int  `json:"totalBlogs"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// NewPagination computes pagination metadata for a page of size limit.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalBlogs:  total,
		HasNext:     page*limit < total,
		HasPrev:     page > 1,
	}
}
