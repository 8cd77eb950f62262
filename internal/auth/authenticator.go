package auth

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/fairwaylabs/clubfit/internal/models"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator defines the interface for authentication implementations,
// so the web layer never touches credential material directly.
type Authenticator interface {
	// Register creates a new account. Returns storage.ErrUsernameTaken
	// unchanged when the username already exists.
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Authenticate verifies the username and password.
	// Returns ErrInvalidCredentials when either is wrong.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using
// salted, iterated PBKDF2 hashes.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// Register creates a new user account with a freshly salted password hash.
// Duplicate usernames surface as storage.ErrUsernameTaken from the store;
// the unique constraint there is the sole duplicate-handling policy.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, password string) (*models.User, error) {
	salt, err := newSalt()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashPassword(password, salt, DefaultIterations),
		Salt:         hex.EncodeToString(salt),
		Iterations:   DefaultIterations,
	}

	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := verifyHash(password, user.PasswordHash, user.Salt, user.Iterations)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
