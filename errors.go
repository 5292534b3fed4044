package slotset

import "github.com/zeebo/errs/v2"

const (
	// ErrInvalidHandle is returned for nil, uninitialized, or destroyed sets.
	ErrInvalidHandle = errs.Tag("invalid set handle")

	// ErrInvalidConfig is returned for capacities that are not a power of
	// two and load factors outside (0, 1].
	ErrInvalidConfig = errs.Tag("invalid set config")

	// ErrAllocation is returned when the allocator refuses a table.
	ErrAllocation = errs.Tag("allocation failure")

	// ErrDuplicateKey is returned by Insert when an equal key is present.
	// It is an expected outcome, not a fault.
	ErrDuplicateKey = errs.Tag("duplicate key")

	// ErrKeyAbsent is returned by Remove when no equal key is present.
	ErrKeyAbsent = errs.Tag("key absent")

	// ErrTableFull is returned when a probe visits every slot without
	// finding the key or an empty slot.
	ErrTableFull = errs.Tag("table full")
)

// ErrInvalidSnapshot is reported by ReadFrom for malformed input.
const ErrInvalidSnapshot = errs.Tag("invalid snapshot")
