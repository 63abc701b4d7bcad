package port

import "context"

type SequenceRepository interface {
	// Next allocates and returns the next transaction sequence number.
	// The first call returns 1; numbers strictly increase. Callers must
	// only allocate once a checkout is certain to complete, so aborted
	// checkouts never consume a number.
	Next(ctx context.Context) (int, error)
}
