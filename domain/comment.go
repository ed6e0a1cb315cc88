package domain

import (
	"context"
	"time"
)

// Comment domain model
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	ParentID  *int64    `json:"parent_id"`
	Content   string    `json:"content"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// User is the author display info, filled on read paths
	User *User `json:"user,omitempty"`
	// Replies holds the direct children once the comment is expanded into a tree
	Replies []*Comment `json:"replies,omitempty"`
}

// IsTopLevel reports whether the comment attaches directly to its post.
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

// CommentUsecase is the comment threading and moderation contract.
type CommentUsecase interface {
	Create(ctx context.Context, content string, postID int64, parentID *int64) (*Comment, error)
	CreateReply(ctx context.Context, parentID int64, content string) (*Comment, error)
	GetByID(ctx context.Context, id int64) (*Comment, error)
	Update(ctx context.Context, id int64, content string) (*Comment, error)
	Delete(ctx context.Context, id int64) error
	Approve(ctx context.Context, id int64) (*Comment, error)
	Disapprove(ctx context.Context, id int64) (*Comment, error)

	// FetchByPost returns the whole forest of a post.
	FetchByPost(ctx context.Context, postID int64) ([]*Comment, error)
	FetchByPostPaginated(ctx context.Context, postID int64, req PageRequest) (Page[*Comment], error)
	FetchRepliesPaginated(ctx context.Context, commentID int64, req PageRequest) (Page[*Comment], error)
	FetchByUser(ctx context.Context, userID int64, req PageRequest) (Page[*Comment], error)

	CountByPost(ctx context.Context, postID int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// CommentRepository is the comment record store the usecase talks to.
type CommentRepository interface {
	// GetByID returns ErrNotFound if the comment doesn't exist.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// FetchByPost returns every comment of a post, in no particular order.
	FetchByPost(ctx context.Context, postID int64) ([]Comment, error)

	// FetchTopLevel pages the comments of a post whose parent is nil, newest first.
	FetchTopLevel(ctx context.Context, postID int64, req PageRequest) (Page[Comment], error)

	// FetchReplies pages the direct replies of a comment, newest first.
	FetchReplies(ctx context.Context, parentID int64, req PageRequest) (Page[Comment], error)

	// FetchByUser pages the comments written by a user, newest first.
	FetchByUser(ctx context.Context, userID int64, req PageRequest) (Page[Comment], error)

	// Store creates a comment and backfills ID, CreatedAt and UpdatedAt.
	Store(ctx context.Context, c *Comment) error

	// Update persists content, approved and updated_at.
	// Returns ErrNotFound if the comment doesn't exist.
	Update(ctx context.Context, c *Comment) error

	// Delete removes the single row, replies are left in place.
	// Returns ErrNotFound if the comment doesn't exist.
	Delete(ctx context.Context, c *Comment) error

	CountByPost(ctx context.Context, postID int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// CommentDBRepository is the database side of CommentRepository
type CommentDBRepository interface {
	CommentRepository
}

// CommentCache keeps the full comment set of a post
type CommentCache interface {
	// GetPostComments returns ErrCacheMiss when nothing is cached.
	// expired reports whether the entry passed its logical expiry.
	GetPostComments(ctx context.Context, postID int64) (comments []Comment, expired bool, err error)
	SetPostComments(ctx context.Context, postID int64, comments []Comment, ttl time.Duration) error
	DeletePostComments(ctx context.Context, postID int64) error
}
