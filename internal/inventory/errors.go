package inventory

import "errors"

var (
	// ErrValidation wraps criterio.FieldErrors describing each rejected field.
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("item not found")
	ErrStorage    = errors.New("storage failure")
)
