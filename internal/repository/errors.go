package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist. The pgx
// repositories surface pgx.ErrNoRows instead; services normalize both.
var ErrNotFound = errors.New("record not found")
