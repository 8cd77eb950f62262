package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fairwaylabs/clubfit/internal/models"
	"github.com/fairwaylabs/clubfit/internal/storage"
)

// createdAtLayout is a fixed-width UTC timestamp. RFC3339Nano is unsuitable
// here: it trims trailing fractional zeros, and ListFittings orders rows by
// string comparison, which requires every stamp to have the same width.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

// CreateFitting inserts a new fitting request for the named user.
// The store stamps CreatedAt with the current UTC time and Status with the
// fixed initial value, then returns the generated id.
func (s *SQLiteStore) CreateFitting(ctx context.Context, username string, fitting *models.Fitting) (int64, error) {
	userID, err := s.userID(ctx, username)
	if err != nil {
		return 0, err
	}

	fitting.UserID = userID
	fitting.Status = models.StatusSubmitted
	fitting.CreatedAt = time.Now().UTC().Format(createdAtLayout)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO fittings (user_id, kind, scheduled_at, comments, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		fitting.UserID, fitting.Kind, fitting.ScheduledAt,
		nullable(fitting.Comments), fitting.Status, fitting.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert fitting: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read fitting id: %w", err)
	}
	fitting.ID = id

	return id, nil
}

// ListFittings returns the user's fittings in descending creation order.
// Unknown users and users without fittings both yield an empty slice.
func (s *SQLiteStore) ListFittings(ctx context.Context, username string) ([]*models.Fitting, error) {
	userID, err := s.userID(ctx, username)
	if err != nil {
		return nil, ignoreUnknownUser(err)
	}

	// id breaks ties between fittings created in the same instant
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, kind, scheduled_at, comments, status, created_at
		 FROM fittings
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fittings: %w", err)
	}
	defer rows.Close()

	var fittings []*models.Fitting
	for rows.Next() {
		fitting, err := scanFitting(rows.Scan)
		if err != nil {
			return nil, err
		}
		fittings = append(fittings, fitting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fittings: %w", err)
	}

	return fittings, nil
}

// GetFitting retrieves a fitting by id. Returns (nil, nil) if absent.
func (s *SQLiteStore) GetFitting(ctx context.Context, id int64) (*models.Fitting, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, kind, scheduled_at, comments, status, created_at
		 FROM fittings
		 WHERE id = ?`,
		id,
	)

	fitting, err := scanFitting(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Fitting not found
	}
	if err != nil {
		return nil, err
	}
	return fitting, nil
}

// UpdateFittingStatus unconditionally sets the status of a fitting.
// The status vocabulary is not validated and a missing id is a no-op.
// No route calls this yet; it exists for administrative status transitions.
func (s *SQLiteStore) UpdateFittingStatus(ctx context.Context, id int64, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE fittings SET status = ? WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update fitting status: %w", err)
	}
	return nil
}

// scanFitting reads one fitting row via the given Scan function, shared by
// the single-row and multi-row queries.
func scanFitting(scan func(dest ...any) error) (*models.Fitting, error) {
	fitting := &models.Fitting{}
	var comments sql.NullString

	err := scan(&fitting.ID, &fitting.UserID, &fitting.Kind, &fitting.ScheduledAt,
		&comments, &fitting.Status, &fitting.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan fitting: %w", err)
	}

	fitting.Comments = comments.String
	return fitting, nil
}

// ignoreUnknownUser maps storage.ErrUnknownUser to nil for read paths where
// an unknown user means "absent", not a constraint failure.
func ignoreUnknownUser(err error) error {
	if errors.Is(err, storage.ErrUnknownUser) {
		return nil
	}
	return err
}
