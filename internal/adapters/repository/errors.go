package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound  = errors.New("student not found")
	ErrEmptyID   = errors.New("empty student id")
	ErrNoStudent = errors.New("row references unknown student")
)
