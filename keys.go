package slotset

import "github.com/histdb/slotset/rwutils"

// U32, Buf and String are value types with snapshot codecs.

type U32 uint32

func (u U32) AppendTo(w *rwutils.W)  { w.Uint32(uint32(u)) }
func (u *U32) ReadFrom(r *rwutils.R) { *u = U32(r.Uint32()) }

// Buf is a byte buffer value. The set stores the slice header only; the
// caller owns the bytes and must not mutate them while they are in a set.
type Buf []byte

func (b Buf) AppendTo(w *rwutils.W) {
	w.Varint(uint64(len(b)))
	w.Bytes(b)
}

// ReadFrom copies the bytes out of the reader so the value does not alias
// the snapshot buffer.
func (b *Buf) ReadFrom(r *rwutils.R) {
	n := r.Varint()
	if n > uint64(r.Remaining()) {
		r.Invalid(ErrInvalidSnapshot.Errorf("buffer of %d bytes exceeds remaining %d", n, r.Remaining()))
		return
	}
	*b = append(Buf(nil), r.Bytes(int(n))...)
}

type String string

func (s String) AppendTo(w *rwutils.W) {
	w.Varint(uint64(len(s)))
	w.Bytes([]byte(s))
}

func (s *String) ReadFrom(r *rwutils.R) {
	n := r.Varint()
	if n > uint64(r.Remaining()) {
		r.Invalid(ErrInvalidSnapshot.Errorf("string of %d bytes exceeds remaining %d", n, r.Remaining()))
		return
	}
	*s = String(r.Bytes(int(n)))
}
