package auth

import "errors"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrTokenRevoked = errors.New("token has been revoked")
	ErrInvalidRole  = errors.New("invalid role")

	ErrManagerAccessRequired = errors.New("manager or owner access required")
)
