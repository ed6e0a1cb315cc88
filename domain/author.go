package domain

import (
	"context"
	"time"
)

// User represents a user entity in the system.
// Only the display fields are read here, credentials live with the auth service.
type User struct {
	ID        int64     // Unique identifier
	Name      string    // Display name
	Username  string    // Login username (unique)
	Role      string    // ROLE_USER or ROLE_ADMIN
	CreatedAt time.Time // Account creation timestamp
	UpdatedAt time.Time // Last profile update timestamp
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByIDs retrieves the users that exist among the given IDs.
	GetByIDs(ctx context.Context, userIDs []int64) ([]User, error)
}
