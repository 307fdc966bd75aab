package service

import "errors"

var (
	ErrDuplicateCredential = errors.New("email or username already registered")
	ErrInvalidCredentials  = errors.New("incorrect username or password")
	ErrUnknownToken        = errors.New("invalid or expired token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrInvalidToken        = errors.New("invalid session token")
	ErrUnauthenticated     = errors.New("could not validate credentials")

	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrWeakPassword    = errors.New("password does not meet requirements")

	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidImage    = errors.New("invalid image")
	ErrImageRequired   = errors.New("image is required")

	ErrInvalidSiteConfig = errors.New("invalid site configuration")

	ErrPageNotFound = errors.New("page not found")
)
