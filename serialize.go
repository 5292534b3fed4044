package slotset

import "github.com/histdb/slotset/rwutils"

const snapshotVersion = 1

// AppendTo writes the values in s to w. Tombstones are not written, and the
// table layout is not preserved.
func AppendTo[T any, RWT rwutils.RW[T]](s *Set[T], w *rwutils.W) {
	w.Uint8(snapshotVersion)
	if !s.valid() {
		w.Varint(0)
		return
	}
	w.Varint(uint64(s.eles))

	for i := range s.slots {
		sl := &s.slots[i]
		if sl.s != stateOccupied {
			continue
		}
		w.Varint(uint64(sl.n))
		RWT(&sl.v).AppendTo(w)
	}
}

// ReadFrom inserts the values of a snapshot written by AppendTo into s,
// which must already be initialized. Failures, including duplicate values,
// are reported through r.
func ReadFrom[T any, RWT rwutils.RW[T]](s *Set[T], r *rwutils.R) {
	if !s.valid() {
		r.Invalid(ErrInvalidHandle)
		return
	}

	if v := r.Uint8(); r.Err() == nil && v != snapshotVersion {
		r.Invalid(ErrInvalidSnapshot.Errorf("unknown version %d", v))
		return
	}

	n := r.Varint()
	if r.Err() != nil {
		return
	}
	// every entry takes at least one byte for its length
	if n > uint64(r.Remaining()) {
		r.Invalid(ErrInvalidSnapshot.Errorf("%d values exceed remaining %d bytes", n, r.Remaining()))
		return
	}
	if err := s.reserve(s.eles + int(n)); err != nil {
		r.Invalid(err)
		return
	}

	for i := uint64(0); i < n; i++ {
		ln := r.Varint()
		if ln > 1<<32-1 {
			r.Invalid(ErrInvalidSnapshot.Errorf("value length %d overflows", ln))
			return
		}

		var v T
		RWT(&v).ReadFrom(r)
		if r.Err() != nil {
			return
		}

		if _, err := s.Insert(v, uint32(ln)); err != nil {
			r.Invalid(err)
			return
		}
	}
}
