package models

// User represents a registered account.
//
// Credentials are stored as a PBKDF2-HMAC-SHA256 hash alongside the salt and
// iteration count used to derive it, so existing records stay verifiable if
// the default iteration count is ever raised. Users are never mutated or
// deleted after registration.
type User struct {
	// ID is the SQLite rowid assigned on insert.
	ID int64

	// Username is the unique login name.
	Username string

	// PasswordHash is the hex-encoded PBKDF2 output.
	PasswordHash string

	// Salt is the hex-encoded random salt used for this record.
	Salt string

	// Iterations is the PBKDF2 iteration count used for this record.
	Iterations int
}
