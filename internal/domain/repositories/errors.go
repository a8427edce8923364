package repositories

import "errors"

// ErrNotFound is returned by repository Get methods when no row matches.
var ErrNotFound = errors.New("repository: record not found")
