// Package models defines the core domain types for Clubfit.
//
// Three models, one ownership root:
//   - User: a registered account with PBKDF2 credential material
//   - Profile: optional contact and club-sizing details, one row per user
//   - Fitting: a scheduled swing analysis or club fitting request
//
// Every Profile and Fitting belongs to exactly one User. Relationships use
// ID fields rather than pointers so rows map directly onto the SQLite
// schema and there are no circular references to break.
package models
