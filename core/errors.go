package core

import "errors"

var (
	ErrInvalidAddress     = errors.New("invalid ethereum address")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrChallengeUsed      = errors.New("challenge already used")
	ErrChallengeExpired   = errors.New("challenge has expired")
	ErrMalformedSignature = errors.New("malformed signature")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrAddressMismatch    = errors.New("recovered address does not match challenge")
	ErrNonceMismatch      = errors.New("message nonce does not match challenge")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("not authenticated")
)
