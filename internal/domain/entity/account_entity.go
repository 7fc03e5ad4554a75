package entity

import "time"

// Account is the aggregate root for identity.
// Passwords are stored as bcrypt hashes in Password field.
type Account struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
