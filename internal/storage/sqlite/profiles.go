package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fairwaylabs/clubfit/internal/models"
)

// SaveProfile upserts the profile row for the named user. All fields
// overwrite the prior values unconditionally; there is no field-level merge.
func (s *SQLiteStore) SaveProfile(ctx context.Context, username string, profile *models.Profile) error {
	userID, err := s.userID(ctx, username)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, full_name, address, email, phone, club_size)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		     full_name = excluded.full_name,
		     address = excluded.address,
		     email = excluded.email,
		     phone = excluded.phone,
		     club_size = excluded.club_size`,
		userID, nullable(profile.FullName), nullable(profile.Address),
		nullable(profile.Email), nullable(profile.Phone), nullable(profile.ClubSize),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	profile.UserID = userID
	return nil
}

// GetProfile retrieves the profile for the named user.
// Returns (nil, nil) if the user is unknown or has never saved a profile.
func (s *SQLiteStore) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	userID, err := s.userID(ctx, username)
	if err != nil {
		return nil, ignoreUnknownUser(err)
	}

	profile := &models.Profile{}
	var fullName, address, email, phone, clubSize sql.NullString

	err = s.db.QueryRowContext(ctx,
		`SELECT user_id, full_name, address, email, phone, club_size
		 FROM profiles
		 WHERE user_id = ?`,
		userID,
	).Scan(&profile.UserID, &fullName, &address, &email, &phone, &clubSize)

	if err == sql.ErrNoRows {
		return nil, nil // No profile saved yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.FullName = fullName.String
	profile.Address = address.String
	profile.Email = email.String
	profile.Phone = phone.String
	profile.ClubSize = clubSize.String

	return profile, nil
}

// nullable maps an empty string to a SQL NULL so blank form fields round-trip
// as NULL columns, matching the all-optional profile schema.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
