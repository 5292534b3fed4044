package varint

import (
	"encoding/binary"
	"math/bits"
)

var le = binary.LittleEndian

//
// prefix varint support
//
// the number of trailing one bits in the first byte, plus one, is the
// encoded length. values that need more than 56 bits take 9 bytes with a
// 0xff marker followed by the little endian value.
//

// MaxLen is the largest encoding of a uint64.
const MaxLen = 9

func Put(dst *[MaxLen]byte, val uint64) (nbytes uintptr) {
	nbytes = 575*uintptr(bits.Len64(val))/4096 + 1

	if nbytes < 9 {
		enc := val<<nbytes + 1<<((nbytes-1)&63) - 1
		le.PutUint64(dst[:], enc)
		return
	}

	dst[0] = 0xff
	le.PutUint64(dst[1:], val)
	return
}

func Append(dst []byte, val uint64) []byte {
	var buf [MaxLen]byte
	n := Put(&buf, val)
	return append(dst, buf[:n]...)
}

func FastConsume(src *[MaxLen]byte) (nbytes uintptr, dec uint64) {
	nbytes = uintptr(bits.TrailingZeros8(^src[0])) + 1

	if nbytes < 9 {
		dec = le.Uint64(src[:]) >> nbytes
		dec &= 1<<((8*nbytes-nbytes)&63) - 1
		return
	}

	dec = le.Uint64(src[1:])
	return
}

// Consume decodes the varint at the front of src, returning the value and
// the number of bytes it used. ok is false when src is empty or truncated.
func Consume(src []byte) (dec uint64, n int, ok bool) {
	if len(src) >= MaxLen {
		nb, v := FastConsume((*[MaxLen]byte)(src))
		return v, int(nb), true
	} else if len(src) == 0 {
		return 0, 0, false
	}

	// slow path: pad into a full buffer so FastConsume can read past the end
	var buf [MaxLen]byte
	copy(buf[:], src)

	nbytes, dec := FastConsume(&buf)
	if int(nbytes) > len(src) {
		return 0, 0, false
	}
	return dec, int(nbytes), true
}
