package domain

import (
	"context"
	"time"
)

// Post is the owner of a comment thread
type Post struct {
	ID        int64
	Title     string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostRepository is the read side of posts needed by comments
type PostRepository interface {
	// GetByID returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (Post, error)

	// FetchIDs returns up to limit post ids greater than cursor, ascending.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}
