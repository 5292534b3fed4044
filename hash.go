package slotset

import (
	"bytes"

	"github.com/zeebo/xxh3"
)

// HashUint32 is Thomas Wang's 32 bit integer hash. The length is ignored.
func HashUint32[V ~uint32](v V, _ uint32) uint64 {
	a := uint32(v)
	a = (a ^ 61) ^ (a >> 16)
	a = a + (a << 3)
	a = a ^ (a >> 4)
	a = a * 0x27d4eb2d
	a = a ^ (a >> 15)
	return uint64(a)
}

func EqualUint32[V ~uint32](a V, _ uint32, b V, _ uint32) bool { return a == b }

// HashBytes hashes the first n bytes of b with xxh3.
func HashBytes[V ~[]byte](b V, n uint32) uint64 {
	return xxh3.Hash(prefix(b, n))
}

// HashDJB2 is Bernstein's djb2 over the first n bytes of b. It is weaker
// than HashBytes but cheap for short keys.
func HashDJB2[V ~[]byte](b V, n uint32) uint64 {
	h := uint64(5381)
	for _, c := range prefix(b, n) {
		h = h*33 + uint64(c)
	}
	return h
}

// EqualBytes compares the first an bytes of a with the first bn bytes of b.
func EqualBytes[V ~[]byte](a V, an uint32, b V, bn uint32) bool {
	return an == bn && bytes.Equal(prefix(a, an), prefix(b, bn))
}

func prefix[V ~[]byte](b V, n uint32) []byte {
	if uint64(n) < uint64(len(b)) {
		return b[:n]
	}
	return b
}

// HashString hashes all of s with xxh3. The length is ignored.
func HashString(s string, _ uint32) uint64 { return xxh3.HashString(s) }

func EqualString(a string, _ uint32, b string, _ uint32) bool { return a == b }

func NewUint32(opts ...Option) (*Set[U32], error) {
	return New[U32](HashUint32[U32], EqualUint32[U32], opts...)
}

func NewBytes(opts ...Option) (*Set[Buf], error) {
	return New[Buf](HashBytes[Buf], EqualBytes[Buf], opts...)
}

func NewString(opts ...Option) (*Set[String], error) {
	return New[String](
		func(s String, n uint32) uint64 { return HashString(string(s), n) },
		func(a String, an uint32, b String, bn uint32) bool { return a == b },
		opts...,
	)
}
