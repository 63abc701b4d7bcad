package storage

import (
	"context"
	"sync/atomic"
)

// MemorySequence is the default sequence source: a process-local counter
// starting at 1. Sequence numbers do not survive a restart; use the Redis
// adapter when they must.
type MemorySequence struct {
	last atomic.Int64
}

func NewMemorySequence() *MemorySequence {
	return &MemorySequence{}
}

func (m *MemorySequence) Next(ctx context.Context) (int, error) {
	return int(m.last.Add(1)), nil
}
