// internal/model/blog.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
}

type BlogCategory struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Name        string    `db:"name"`
}

type Post struct {
	ID          uuid.UUID  `db:"id"`
	WorkspaceID uuid.UUID  `db:"workspace_id"`
	AuthorID    uuid.UUID  `db:"blog_author_id"`
	CategoryID  uuid.UUID  `db:"blog_category_id"`
	Title       string     `db:"title"`
	Body        string     `db:"body"`
	PublishedAt *time.Time `db:"published_at"`
}

type Comment struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	PostID      uuid.UUID `db:"blog_post_id"`
	AuthorName  string    `db:"author_name"`
	Body        string    `db:"body"`
}

type Link struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
}
