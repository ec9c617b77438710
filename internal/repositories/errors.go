package repositories

import "errors"

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned when a conditional save loses the race
// against a concurrent writer. Callers should re-read and retry or report
// a conflict.
var ErrVersionConflict = errors.New("version conflict")
