package repository

import "errors"

var (
	// ErrNotFound is returned when a student or award id is unknown.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when another current student already uses the email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNegativePoints is returned when an award carries a negative course delta.
	ErrNegativePoints = errors.New("points must not be negative")
	// ErrStatusRegression is returned when a notification status would move backward.
	ErrStatusRegression = errors.New("notification status cannot move backward")
)
