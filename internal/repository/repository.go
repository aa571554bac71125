package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Services
// check for it with errors.Is instead of matching driver errors.
var ErrNotFound = errors.New("not found")
