package domain

import "errors"

// ErrDuplicate is returned by repositories when an insert violates a
// uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")
