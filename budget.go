package slotset

// Allocator accounts for the memory backing slot tables. Reserve is called
// before a table is allocated and may refuse it; Release is called once the
// table is dropped.
type Allocator interface {
	Reserve(bytes uint64) error
	Release(bytes uint64)
}

// Budget is an Allocator that refuses reservations past a fixed limit.
// It is not safe for concurrent use.
type Budget struct {
	limit uint64
	used  uint64
}

// NewBudget returns a Budget allowing limit bytes in use at once.
func NewBudget(limit uint64) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) Limit() uint64 { return b.limit }
func (b *Budget) Used() uint64  { return b.used }

func (b *Budget) Reserve(bytes uint64) error {
	if bytes > b.limit-b.used {
		return ErrAllocation.Errorf("reserve %d bytes: %d of %d in use", bytes, b.used, b.limit)
	}
	b.used += bytes
	return nil
}

func (b *Budget) Release(bytes uint64) {
	if bytes > b.used {
		bytes = b.used
	}
	b.used -= bytes
}
