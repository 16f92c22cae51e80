package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrProfileNotFound is returned when a user id does not resolve to a profile
var ErrProfileNotFound = errors.New("user not found")

// ProfileRepository defines the interface for fetching user profiles
type ProfileRepository interface {
	// GetUser retrieves the public profile of the given user
	GetUser(ctx context.Context, userID string) (*UserProfile, error)
}

// CollectionRepository defines the interface for fetching a user's collection
type CollectionRepository interface {
	// GetWatchedAnime retrieves the anime the user has marked as watched.  Failed pages degrade to empty pages, so
	// this never returns an error for a partial fetch.
	GetWatchedAnime(ctx context.Context, userID string) ([]CollectionRecord, error)
}

// NetworkError indicates the remote service could not be reached at all
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}
