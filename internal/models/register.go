package models

// RegisterRequest represents the JSON body for registration step 1
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`

	// Email
	// example: john@example.com
	Email string `json:"email"`
}

// ProfileRequest represents the JSON body for registration step 2.
// All fields are required; birth_date must be YYYY-MM-DD.
// swagger:model ProfileRequest
type ProfileRequest struct {
	// Birth date
	// required: true
	// example: 2000-01-01
	BirthDate string `json:"birth_date"`

	// Country
	// required: true
	// example: Poland
	Country string `json:"country"`

	// City
	// required: true
	// example: Warszawa
	City string `json:"city"`

	// Postal code
	// required: true
	// example: 123-456
	PostCode string `json:"post_code"`

	// Telephone number
	// required: true
	// example: +48123456789
	TelephoneNumber string `json:"telephone_number"`
}

// AccountView is the full account representation returned when
// registration step 2 succeeds
// swagger:model AccountView
type AccountView struct {
	// Account id
	// example: 1
	ID int64 `json:"id"`

	// Username
	// example: john_doe
	Username string `json:"username"`

	// Email, empty string when not provided
	// example: john@example.com
	Email string `json:"email"`

	// Nested profile
	UserProfile ProfileView `json:"user_profile"`
}
