package config

import "errors"

// ErrMissingTokenA indicates that the required TOKEN_A variable is not set
// in the environment.
var ErrMissingTokenA = errors.New("missing TOKEN_A environment variable")

// ErrMissingTokenB indicates that the required TOKEN_B variable is not set
// in the environment.
var ErrMissingTokenB = errors.New("missing TOKEN_B environment variable")

// ErrInvalidTokenA indicates that TOKEN_A is not a valid hex address.
var ErrInvalidTokenA = errors.New("TOKEN_A is not a valid hex address")

// ErrInvalidTokenB indicates that TOKEN_B is not a valid hex address.
var ErrInvalidTokenB = errors.New("TOKEN_B is not a valid hex address")

// ErrSameTokens indicates that the two pool assets resolve to the same
// address.
var ErrSameTokens = errors.New("TOKEN_A and TOKEN_B must be distinct addresses")
