package entity

import "time"

// Profile binds an account to its marketplace role.
// Exactly one profile exists per account; the role is fixed at registration.
type Profile struct {
	AccountID  string
	IsMerchant bool
	CreatedAt  time.Time
}
