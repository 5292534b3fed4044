package rwutils

import (
	"encoding/binary"

	"github.com/zeebo/errs/v2"

	"github.com/histdb/slotset/varint"
)

var le = binary.LittleEndian

// RW is satisfied by pointers to types that can encode and decode
// themselves.
type RW[T any] interface {
	*T
	AppendTo(w *W)
	ReadFrom(r *R)
}

type W struct {
	buf []byte
}

func (w *W) Init(buf []byte) {
	*w = W{buf: buf[:0]}
}

func (w *W) Done() []byte { return w.buf }

func (w *W) Uint8(x uint8) {
	w.buf = append(w.buf, x)
}

func (w *W) Uint32(x uint32) {
	w.buf = le.AppendUint32(w.buf, x)
}

func (w *W) Uint64(x uint64) {
	w.buf = le.AppendUint64(w.buf, x)
}

func (w *W) Varint(x uint64) {
	w.buf = varint.Append(w.buf, x)
}

func (w *W) Bytes(buf []byte) {
	w.buf = append(w.buf, buf...)
}

// R reads values from a buffer. The first failure is sticky: later reads
// return zero values and Done reports the error.
type R struct {
	buf []byte
	err error
}

func (r *R) Init(buf []byte) {
	*r = R{buf: buf}
}

func (r *R) Done() ([]byte, error) {
	return r.buf, r.err
}

func (r *R) Err() error { return r.err }

func (r *R) Remaining() int { return len(r.buf) }

func (r *R) Invalid(err error) {
	if r.err == nil {
		r.err = err
		r.buf = nil
	}
}

func (r *R) Uint8() (x uint8) {
	if r.err == nil {
		if len(r.buf) >= 1 {
			x, r.buf = r.buf[0], r.buf[1:]
		} else {
			r.bad(1)
		}
	}
	return
}

func (r *R) Uint32() (x uint32) {
	if r.err == nil {
		if len(r.buf) >= 4 {
			x, r.buf = le.Uint32(r.buf), r.buf[4:]
		} else {
			r.bad(4)
		}
	}
	return
}

func (r *R) Uint64() (x uint64) {
	if r.err == nil {
		if len(r.buf) >= 8 {
			x, r.buf = le.Uint64(r.buf), r.buf[8:]
		} else {
			r.bad(8)
		}
	}
	return
}

func (r *R) Varint() (x uint64) {
	if r.err == nil {
		dec, n, ok := varint.Consume(r.buf)
		if ok {
			x, r.buf = dec, r.buf[n:]
		} else {
			r.Invalid(errs.Errorf("short buffer: truncated varint"))
		}
	}
	return
}

// Bytes returns the next n bytes. The result aliases the reader's buffer.
func (r *R) Bytes(n int) (x []byte) {
	if r.err == nil {
		if n >= 0 && len(r.buf) >= n {
			x, r.buf = r.buf[:n:n], r.buf[n:]
		} else {
			r.bad(n)
		}
	}
	return
}

func (r *R) bad(n int) {
	r.Invalid(errs.Errorf("short buffer: needed %d bytes", n))
}
