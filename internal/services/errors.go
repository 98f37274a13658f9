package services

import "errors"

// Sentinel errors surfaced by the service layer. Handlers map these onto
// HTTP status codes; anything unwrapped is a 500.
var (
	// ErrEmptyPool means a draw was attempted with zero eligible weight
	ErrEmptyPool = errors.New("no eligible entries in the draw pool")

	// ErrSpinInProgress means another spin is already running
	ErrSpinInProgress = errors.New("a spin is already in progress")

	// ErrCodeInvalid means the code does not exist
	ErrCodeInvalid = errors.New("purchase code is invalid")

	// ErrCodeAlreadyUsed means the code was redeemed before
	ErrCodeAlreadyUsed = errors.New("purchase code has already been used")

	// ErrCodeExpired means the code expired before redemption
	ErrCodeExpired = errors.New("purchase code has expired")

	// ErrDuplicateEmail means registration hit an existing account
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// ErrInvalidCredentials covers both unknown email and bad password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidQuantity rejects non-positive purchase quantities
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidClaimStatus rejects unknown claim status values
	ErrInvalidClaimStatus = errors.New("invalid claim status")

	// ErrNotFound means a referenced entity is absent
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the actor lacks the required capability
	ErrForbidden = errors.New("operation not permitted")
)
