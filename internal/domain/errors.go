package domain

import "errors"

// Lookup errors
var (
	ErrNotFound = errors.New("listing not found")
)

// Session gate errors
var (
	ErrLoginRequired  = errors.New("please log in")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
	ErrInvalidSignup  = errors.New("invalid signup")
)

// Listing creation errors
var (
	ErrInvalidListing = errors.New("invalid listing")
)
