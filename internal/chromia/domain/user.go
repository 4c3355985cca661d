package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2 encoded, never serialized
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
