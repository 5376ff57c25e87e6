package models

import (
	"time"
)

// UserDB represents an account record in the database
type UserDB struct {
	UserID       int64     `json:"id" db:"user_id"`            // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never serialized
	Email        string    `json:"email" db:"email"`           // Optional email, empty when absent
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
