package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("you must be signed in")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyRated       = errors.New("already rated: you have already rated this menu")
	ErrConflict           = errors.New("already exists")
	ErrInUse              = errors.New("still in use")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
	ErrSessionNotFound    = errors.New("session expired or signed out")
)

// lookupErr turns gorm's not-found into ErrNotFound naming what was missing.
func lookupErr(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}
