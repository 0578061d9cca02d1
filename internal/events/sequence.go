package events

import (
	"context"
	"fmt"
	"sync"
)

// SequenceSource hands out monotonically increasing sequence numbers per
// partition key so consumers can order events from one session.
type SequenceSource interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type memorySequenceSource struct {
	mu   sync.Mutex
	last map[string]int64
}

// NewMemorySequenceSource returns an in-process SequenceSource. Session
// state lives in memory, so sequences do too; they restart at 1 with the
// process.
func NewMemorySequenceSource() SequenceSource {
	return &memorySequenceSource{last: make(map[string]int64)}
}

func (s *memorySequenceSource) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, fmt.Errorf("partition key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last[partitionKey]++
	return s.last[partitionKey], nil
}
