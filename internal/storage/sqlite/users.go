package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fairwaylabs/clubfit/internal/models"
	"github.com/fairwaylabs/clubfit/internal/storage"
)

// CreateUser inserts a new user into the database.
// The unique constraint on username is the sole duplicate-handling policy:
// a second registration surfaces as storage.ErrUsernameTaken and the
// existing record is untouched.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, salt, iterations)
		 VALUES (?, ?, ?, ?)`,
		user.Username, user.PasswordHash, user.Salt, user.Iterations,
	)
	if err != nil {
		// modernc/sqlite reports constraint violations as plain errors
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUserByUsername retrieves a user by their login name.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, salt, iterations
		 FROM users
		 WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &user.Iterations)

	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}
