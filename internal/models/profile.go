package models

import (
	"time"
)

// ProfileDB represents a user profile record, one-to-one with an account.
// Created only together with its account during registration step 2.
type ProfileDB struct {
	UserID          int64     `json:"user_id" db:"user_id"`
	BirthDate       time.Time `json:"birth_date" db:"birth_date"`
	Country         string    `json:"country" db:"country"`
	City            string    `json:"city" db:"city"`
	PostCode        string    `json:"post_code" db:"post_code"`
	TelephoneNumber string    `json:"telephone_number" db:"telephone_number"`
}

// ProfileView is the profile part of the account view returned after
// registration completes. Dates are rendered as YYYY-MM-DD.
// swagger:model ProfileView
type ProfileView struct {
	// Birth date
	// example: 2000-01-01
	BirthDate string `json:"birth_date"`

	// Country
	// example: Poland
	Country string `json:"country"`

	// City
	// example: Warszawa
	City string `json:"city"`

	// Postal code
	// example: 123-456
	PostCode string `json:"post_code"`

	// Telephone number
	// example: +48123456789
	TelephoneNumber string `json:"telephone_number"`
}
