// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/fairwaylabs/clubfit/internal/models"
)

var (
	// ErrUsernameTaken is returned by CreateUser when the username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUnknownUser is returned by operations that resolve a username to an
	// account when no such account exists.
	ErrUnknownUser = errors.New("unknown user")
)

// Store defines the persistence operations for users, profiles and fittings.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the web layer.
//
// Lookup methods return (nil, nil) when the requested record is absent;
// a non-nil error always indicates a storage fault.
type Store interface {
	// CreateUser inserts a new user record. Returns ErrUsernameTaken if the
	// username is already registered; the existing record is never overwritten.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by login name.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// SaveProfile upserts the profile row for the named user, overwriting
	// every field unconditionally. Returns ErrUnknownUser if the username
	// does not resolve to an account.
	SaveProfile(ctx context.Context, username string, profile *models.Profile) error

	// GetProfile retrieves the profile for the named user, or (nil, nil) if
	// the user is unknown or has never saved one.
	GetProfile(ctx context.Context, username string) (*models.Profile, error)

	// CreateFitting inserts a new fitting request for the named user, stamping
	// Status and CreatedAt, and returns the generated id. Returns
	// ErrUnknownUser if the username does not resolve to an account.
	CreateFitting(ctx context.Context, username string, fitting *models.Fitting) (int64, error)

	// ListFittings returns the user's fittings newest first. Unknown users
	// and users with no fittings both yield an empty slice.
	ListFittings(ctx context.Context, username string) ([]*models.Fitting, error)

	// GetFitting retrieves a fitting by id.
	GetFitting(ctx context.Context, id int64) (*models.Fitting, error)

	// UpdateFittingStatus unconditionally sets the status of a fitting.
	// Updating a nonexistent id is a no-op, not an error.
	UpdateFittingStatus(ctx context.Context, id int64, status string) error

	// Close releases any resources held by the store.
	Close() error
}
