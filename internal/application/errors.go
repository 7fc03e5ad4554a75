package application

import "errors"

// User-facing error kinds. All of them are recoverable: handlers convert
// them to a message and send the actor back to a sensible screen.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileMissing     = errors.New("profile not found")
	ErrShopExists         = errors.New("shop already registered")
	ErrNoShop             = errors.New("no shop registered")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrProductNotFound    = errors.New("product not found")
)
