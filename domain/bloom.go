package domain

import "context"

// BloomRepository answers "may this post exist" without touching the database
type BloomRepository interface {
	// Add puts the ID into the filter
	Add(ctx context.Context, id int64) error

	// Exists checks whether the ID may exist.
	// true: maybe, look it up in the database
	// false: not in the filter; posts published after it was loaded
	// are missing until Add is called for them
	Exists(ctx context.Context, id int64) (bool, error)

	// BulkAdd adds many IDs in one round trip
	BulkAdd(ctx context.Context, ids []int64) error
}
