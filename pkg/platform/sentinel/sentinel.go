package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// so services can translate them into domain errors:
//   - ErrNotFound: the id does not resolve to a stored row
//   - ErrConstraint: the write would orphan a row or break a uniqueness rule
//   - ErrConflict: a concurrent writer won and the caller may retry
//   - ErrUnavailable: the backend could not be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConstraint  = errors.New("constraint violation")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
