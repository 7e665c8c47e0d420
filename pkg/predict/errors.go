package predict

import "github.com/cockroachdb/errors"

var (
	// ErrCapacityExceeded is returned when the word table cannot hand out
	// another index. Fatal: the index must be rebuilt.
	ErrCapacityExceeded = errors.New("word table capacity exceeded")

	// ErrInvalidCell marks a dictionary cell that is neither compact nor full.
	// This never happens unless cell promotion is broken.
	ErrInvalidCell = errors.New("dictionary cell in unknown state")

	ErrInvalidSettings    = errors.New("invalid settings")
	ErrMissingCustomizing = errors.New("customizing is required")
)
