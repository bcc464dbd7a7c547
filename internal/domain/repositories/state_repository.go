package repositories

import (
	"context"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// StateRepository persists the ordered list of tracked configurations per user.
type StateRepository interface {
	// Name returns the backend identifier (e.g. "badger", "file").
	Name() string

	// Load returns the user's list, or an empty list for an unknown user.
	Load(ctx context.Context, userID string) ([]entities.TrackedConfiguration, error)

	// Save atomically replaces the user's list. A concurrent Load observes
	// either the previous list or the new one, never a mix.
	Save(ctx context.Context, userID string, configs []entities.TrackedConfiguration) error

	// Users lists every user with stored state, in ascending order.
	Users(ctx context.Context) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}
