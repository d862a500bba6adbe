package course

import "errors"

var (
	// ErrNotFound is returned when a course, or a lesson inside an existing
	// course, does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation wraps input problems detected before any work is done.
	ErrValidation = errors.New("validation error")
	// ErrConflict is returned when a course was modified between load and save.
	ErrConflict = errors.New("course was modified concurrently")
	// ErrStorage wraps document store and file storage failures.
	ErrStorage = errors.New("storage failure")
)
