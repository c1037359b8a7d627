package suggest

import "errors"

// Failure taxonomy for the suggestion flow. Input errors stop before any
// network I/O; catalog errors propagate; enrichment failures never do.
var (
	ErrMissingTime      = errors.New("time budget not selected")
	ErrMissingMood      = errors.New("mood not selected")
	ErrUnrecognizedMood = errors.New("unrecognized mood")
	ErrNoResults        = errors.New("no titles matched the filters")
	ErrPoolExhausted    = errors.New("no unshown suggestions remain")
	ErrFetchInProgress  = errors.New("a fetch is already in flight")
	ErrSessionNotFound  = errors.New("suggestion session not found")

	// ErrCatalogUnavailable wraps discovery failures (transport errors and
	// non-success statuses) so callers can tell them apart from empty results.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
