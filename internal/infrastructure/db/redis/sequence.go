package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sequenceKey = "enquiries:seq"

// SequenceAllocator hands out enquiry display-id sequence numbers with a
// single atomic INCR, replacing the count-then-insert pattern that could
// produce duplicate ids under concurrent submissions.
type SequenceAllocator struct {
	client *redis.Client
}

// NewSequenceAllocator creates a SequenceAllocator wrapping the given client.
func NewSequenceAllocator(client *redis.Client) *SequenceAllocator {
	return &SequenceAllocator{client: client}
}

// Next atomically increments and returns the sequence counter.
func (a *SequenceAllocator) Next(ctx context.Context) (int64, error) {
	n, err := a.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence incr: %w", err)
	}
	return n, nil
}

// Seed initialises the counter to n if it does not exist yet, so a fresh
// counter continues from the current collection count instead of restarting
// at 1. Existing counters are left untouched.
func (a *SequenceAllocator) Seed(ctx context.Context, n int64) error {
	if err := a.client.SetNX(ctx, sequenceKey, n, 0).Err(); err != nil {
		return fmt.Errorf("sequence seed: %w", err)
	}
	return nil
}
