package repositories

import "errors"

// ErrNotFound is wrapped by every lookup that resolves no row, so callers can
// map it to a 404 without knowing about gorm.
var ErrNotFound = errors.New("record not found")
