// Package repository executes parameterized SQL against the relational
// store. It holds no business logic: callers decide state transitions and
// the repositories apply them, multi-statement mutations inside a single
// transaction.
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist. Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they are not allowed to touch (voting on own content,
// accepting on someone else's question). Handlers translate it into a
// 403 or 400 response depending on the endpoint's convention.
var ErrForbidden = errors.New("forbidden")

// ErrUserExists is returned when registration collides with an existing
// username or email.
var ErrUserExists = errors.New("username or email already exists")
