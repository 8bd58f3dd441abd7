package interfaces

import "context"

// IQuoteNumberAllocator hands out quote-number sequence values. The sequence
// is monotonic within a calendar year and resets with it.
//
// Allocation must be an atomic storage-level increment, never a
// scan-then-insert over existing quote numbers: that read-then-write races
// under concurrent requests.
type IQuoteNumberAllocator interface {
	NextSequence(ctx context.Context, year int) (int, error)
}
