package service

import "errors"

var (
	// ErrEmptyCart rejects checkout before any write happens.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrAddressNotFound covers both a missing address and an address
	// owned by another user; callers cannot tell the two apart.
	ErrAddressNotFound    = errors.New("address not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)
