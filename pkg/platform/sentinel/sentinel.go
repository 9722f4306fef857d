package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: record or key does not exist
//   - ErrConflict: a uniqueness rule rejected the write
//   - ErrInvalidState: stored data cannot be used as-is (e.g. corrupt JSON)
//   - ErrUnavailable: backing storage could not be reached
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
