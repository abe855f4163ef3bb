package domain

import "errors"

var (
	// ErrForbidden marks a page requested by the wrong role.
	ErrForbidden = errors.New("access forbidden")
	// ErrInvalidRating marks a rating outside the 1..5 range.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
