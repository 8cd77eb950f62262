package models

// Profile holds optional contact and club-sizing details, one row per user.
// Every field is free text and may be empty; a save overwrites the whole row.
type Profile struct {
	UserID   int64
	FullName string
	Address  string
	Email    string
	Phone    string
	ClubSize string
}
