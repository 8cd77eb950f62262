package models

// Fitting kinds. The scheduling forms only ever submit these two values,
// but the store does not enforce the vocabulary.
const (
	KindSwing   = "swing"
	KindFitting = "fitting"
)

// StatusSubmitted is the status stamped on every new fitting request.
// Later transitions are free text, driven externally through
// Store.UpdateFittingStatus.
const StatusSubmitted = "Fitting Request Submitted"

// Fitting is a scheduled appointment request: either a swing analysis or a
// club fitting session. Fittings belong to exactly one user and are never
// deleted.
type Fitting struct {
	// ID is the SQLite rowid assigned on insert.
	ID int64

	// UserID is the owning user.
	UserID int64

	// Kind is "swing" or "fitting".
	Kind string

	// ScheduledAt is the requested date and time as submitted ("2024-06-01 10:00").
	// It is stored verbatim, not parsed.
	ScheduledAt string

	// Comments is optional free text from the request form.
	Comments string

	// Status is the current free-text status, starting at StatusSubmitted.
	Status string

	// CreatedAt is the UTC creation timestamp, set by the store. The format
	// is fixed-width ("2006-01-02T15:04:05.000000000Z") so stamps sort
	// chronologically as strings.
	CreatedAt string
}
