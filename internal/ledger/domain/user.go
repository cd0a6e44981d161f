package domain

import "time"

// User is an account holder. Users are deactivated rather than deleted.
type User struct {
	ID           string
	Email        string // unique, compared case-sensitively
	PasswordHash string // bcrypt over a SHA-256 digest
	IsActive     bool
	CreatedAt    time.Time
}
