package slotset

import (
	"fmt"
	"io"
)

// Dump writes the state of every non-empty slot to w, one per line, with
// the home slot of occupied values. It is meant for debugging probe
// clustering.
func (s *Set[T]) Dump(w io.Writer) error {
	if !s.valid() {
		_, err := fmt.Fprintln(w, "slotset: invalid")
		return err
	}

	_, err := fmt.Fprintf(w, "slotset: len=%d cap=%d tombs=%d load=%.3f/%.3f\n",
		s.eles, len(s.slots), s.tombs, s.Load(), s.load)
	if err != nil {
		return err
	}

	mask := uint64(len(s.slots) - 1)
	for i := range s.slots {
		sl := &s.slots[i]
		switch sl.s {
		case stateEmpty:
			continue
		case stateOccupied:
			home := s.hash(sl.v, sl.n) & mask
			_, err = fmt.Fprintf(w, "%8d %-9s home=%-8d len=%-4d %v\n", i, sl.s, home, sl.n, sl.v)
		default:
			_, err = fmt.Fprintf(w, "%8d %s\n", i, sl.s)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
