// Package slotset implements an open addressing hash set over arbitrary
// value types. Callers supply the hash and equality functions, and every
// value carries a length tag that only those functions interpret, so
// variable length keys like byte buffers work alongside scalars.
//
// Collisions are resolved by linear probing. Removed entries leave
// tombstones that keep probe sequences intact until the next resize
// rebuilds the table. A Set is not safe for concurrent use.
package slotset

import (
	"math"

	"github.com/histdb/slotset/sizeof"
)

// HashFunc hashes a value of the given length. Only the bits below the
// table capacity pick the home slot.
type HashFunc[T any] func(v T, n uint32) uint64

// EqualFunc reports whether two values with their lengths are equal.
type EqualFunc[T any] func(a T, an uint32, b T, bn uint32) bool

type state uint8

const (
	stateEmpty state = iota
	stateOccupied
	stateTombstone
)

func (s state) String() string {
	switch s {
	case stateEmpty:
		return "empty"
	case stateOccupied:
		return "occupied"
	case stateTombstone:
		return "tombstone"
	default:
		return "invalid"
	}
}

type slot[T any] struct {
	v T
	n uint32
	s state
}

// Set is an open addressing hash set of T. The zero value must be
// initialized with Init before use.
type Set[T any] struct {
	_ [0]func() // no equality

	slots []slot[T]
	eles  int
	tombs int

	hash  HashFunc[T]
	eq    EqualFunc[T]
	load  float64
	alloc Allocator
}

// New returns an initialized set using the provided options.
func New[T any](hash HashFunc[T], eq EqualFunc[T], opts ...Option) (*Set[T], error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	s := new(Set[T])
	if err := s.Init(hash, eq, cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Init allocates the slot table. Any previous table is not released; call
// Destroy first when reusing a set.
func (s *Set[T]) Init(hash HashFunc[T], eq EqualFunc[T], cfg Config) error {
	if s == nil || hash == nil || eq == nil {
		return ErrInvalidHandle
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}

	next := Set[T]{
		hash:  hash,
		eq:    eq,
		load:  cfg.MaxLoadFactor,
		alloc: cfg.Allocator,
	}
	slots, err := next.allocate(cfg.InitialCapacity)
	if err != nil {
		return err
	}
	next.slots = slots

	*s = next
	return nil
}

// Destroy releases the slot table and resets the set to its zero value. It
// is safe to call on nil, zero, and already destroyed sets.
func (s *Set[T]) Destroy() {
	if s == nil {
		return
	}
	if s.slots != nil {
		s.release(s.slots)
	}
	*s = Set[T]{}
}

func (s *Set[T]) valid() bool { return s != nil && s.slots != nil }

// Len returns the number of values in the set.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return s.eles
}

// Cap returns the number of slots in the table.
func (s *Set[T]) Cap() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}

// Tombstones returns the number of slots holding removed values.
func (s *Set[T]) Tombstones() int {
	if s == nil {
		return 0
	}
	return s.tombs
}

// MaxLoad returns the configured maximum load factor.
func (s *Set[T]) MaxLoad() float64 {
	if s == nil {
		return 0
	}
	return s.load
}

// Load returns Len/Cap. Tombstones are not counted.
func (s *Set[T]) Load() float64 {
	if !s.valid() {
		return 0
	}
	return float64(s.eles) / float64(len(s.slots))
}

// Size returns the approximate number of bytes held by the set, excluding
// any data referenced by the values.
func (s *Set[T]) Size() uint64 {
	if s == nil {
		return 0
	}
	return 0 +
		/* slots */ sizeof.Slice(s.slots) +
		/* eles  */ 8 +
		/* tombs */ 8 +
		/* hash  */ 8 +
		/* eq    */ 8 +
		/* load  */ 8 +
		/* alloc */ 16 +
		0
}

// FindSlot probes for key starting at its home slot. A Hit carries the
// index holding key, a Miss the first empty slot on the probe sequence.
func (s *Set[T]) FindSlot(key T, n uint32) (Probe, error) {
	if !s.valid() {
		return Probe{}, ErrInvalidHandle
	}
	p, _ := s.probe(s.slots, key, n)
	return p, nil
}

// probe walks the probe sequence for key. It also returns the index of the
// first tombstone passed, or -1, which an insert of an absent key reclaims.
func (s *Set[T]) probe(slots []slot[T], key T, n uint32) (Probe, int) {
	mask := uint64(len(slots) - 1)
	idx := s.hash(key, n) & mask
	tomb := -1

	for range slots {
		switch sl := &slots[idx]; sl.s {
		case stateEmpty:
			return Probe{Outcome: Miss, Index: int(idx)}, tomb
		case stateOccupied:
			if s.eq(sl.v, sl.n, key, n) {
				return Probe{Outcome: Hit, Index: int(idx)}, tomb
			}
		case stateTombstone:
			if tomb < 0 {
				tomb = int(idx)
			}
		}
		idx = (idx + 1) & mask
	}

	return fullProbe, tomb
}

// Insert adds key to the set. It returns false with ErrDuplicateKey if an
// equal key is present. If the insert would push the load past the maximum
// the table is grown first, and a failed grow aborts the insert. An absent
// key is written into the first tombstone on its probe sequence if there is
// one, otherwise into the empty slot that ended the probe.
func (s *Set[T]) Insert(key T, n uint32) (bool, error) {
	if !s.valid() {
		return false, ErrInvalidHandle
	}

	if s.overloaded(s.eles+1, len(s.slots)) {
		if err := s.grow(s.eles + 1); err != nil {
			return false, err
		}
	} else if s.tombs > 0 && s.overloaded(s.eles+s.tombs+1, len(s.slots)) {
		// tombstones fill the table: rebuild in place. if the rebuild is
		// refused the insert below reclaims a tombstone.
		_ = s.Resize(len(s.slots))
	}

	p, tomb := s.probe(s.slots, key, n)
	switch {
	case p.Outcome == Hit:
		return false, ErrDuplicateKey
	case tomb >= 0:
		p.Index = tomb
		s.tombs--
	case p.Outcome == Full:
		return false, ErrTableFull.Errorf("insert into %d slots", len(s.slots))
	}

	s.slots[p.Index] = slot[T]{v: key, n: n, s: stateOccupied}
	s.eles++
	return true, nil
}

// Contains reports whether key is in the set.
func (s *Set[T]) Contains(key T, n uint32) bool {
	if !s.valid() {
		return false
	}
	p, _ := s.probe(s.slots, key, n)
	return p.Outcome == Hit
}

// Remove tombstones the slot holding key. It returns false with
// ErrKeyAbsent if key is not in the set.
func (s *Set[T]) Remove(key T, n uint32) (bool, error) {
	if !s.valid() {
		return false, ErrInvalidHandle
	}

	p, _ := s.probe(s.slots, key, n)
	if p.Outcome != Hit {
		return false, ErrKeyAbsent
	}

	sl := &s.slots[p.Index]
	sl.v, sl.n, sl.s = *new(T), 0, stateTombstone
	s.eles--
	s.tombs++
	return true, nil
}

// Resize rebuilds the table with the given capacity, dropping tombstones.
// The live table is only replaced once the new one is fully populated, so
// any error leaves the set unchanged.
func (s *Set[T]) Resize(capacity int) error {
	if !s.valid() {
		return ErrInvalidHandle
	}
	if !isPow2(capacity) {
		return ErrInvalidConfig.Errorf("capacity %d is not a power of two", capacity)
	}
	if capacity < s.eles {
		return ErrTableFull.Errorf("resize %d values into %d slots", s.eles, capacity)
	}

	slots, err := s.allocate(capacity)
	if err != nil {
		return err
	}

	for i := range s.slots {
		sl := &s.slots[i]
		if sl.s != stateOccupied {
			continue
		}

		p, _ := s.probe(slots, sl.v, sl.n)
		switch p.Outcome {
		case Hit:
			s.release(slots)
			return ErrDuplicateKey.Errorf("equality function matched distinct values during resize")
		case Full:
			s.release(slots)
			return ErrTableFull.Errorf("resize into %d slots", capacity)
		}
		slots[p.Index] = *sl
	}

	s.release(s.slots)
	s.slots = slots
	s.tombs = 0
	return nil
}

func (s *Set[T]) overloaded(eles, capacity int) bool {
	return float64(eles)/float64(capacity) > s.load
}

// grow resizes to the smallest power of two capacity, no smaller than the
// current one, that holds eles values under the load factor.
func (s *Set[T]) grow(eles int) error {
	want := math.Ceil(float64(eles) / s.load)
	if want > maxCapacity {
		return ErrAllocation.Errorf("capacity overflow growing to %d values", eles)
	}
	capacity := max(np2(int(want)), len(s.slots))
	for s.overloaded(eles, capacity) {
		if capacity > maxCapacity/2 {
			return ErrAllocation.Errorf("capacity overflow growing past %d slots", capacity)
		}
		capacity *= 2
	}
	return s.Resize(capacity)
}

// reserve grows the table ahead of inserting eles values in total.
func (s *Set[T]) reserve(eles int) error {
	if eles < 0 {
		return ErrAllocation.Errorf("reserve %d values", eles)
	}
	if !s.overloaded(eles, len(s.slots)) {
		return nil
	}
	return s.grow(eles)
}

func (s *Set[T]) allocate(capacity int) ([]slot[T], error) {
	if s.alloc != nil {
		if err := s.alloc.Reserve(sizeof.Elems[slot[T]](capacity)); err != nil {
			return nil, ErrAllocation.Wrap(err)
		}
	}
	return make([]slot[T], capacity), nil
}

func (s *Set[T]) release(slots []slot[T]) {
	if s.alloc != nil {
		s.alloc.Release(sizeof.Elems[slot[T]](len(slots)))
	}
}
