package varint

import (
	"math"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/mwc"
)

func TestVarint(t *testing.T) {
	check := func(t *testing.T, val uint64, size int) {
		t.Helper()

		buf := Append(nil, val)
		assert.Equal(t, len(buf), size)

		dec, n, ok := Consume(buf)
		assert.That(t, ok)
		assert.Equal(t, n, size)
		assert.Equal(t, dec, val)

		// trailing bytes are not consumed
		dec, n, ok = Consume(append(buf, 1, 2, 3, 4, 5, 6, 7, 8, 9))
		assert.That(t, ok)
		assert.Equal(t, n, size)
		assert.Equal(t, dec, val)
	}

	t.Run("Boundaries", func(t *testing.T) {
		check(t, 0, 1)
		check(t, 1<<7-1, 1)
		check(t, 1<<7, 2)
		check(t, 1<<14-1, 2)
		check(t, 1<<14, 3)
		check(t, 1<<56-1, 8)
		check(t, 1<<56, 9)
		check(t, math.MaxUint64, 9)
	})

	t.Run("Random", func(t *testing.T) {
		rng := mwc.New(1, 1)
		for i := 0; i < 10000; i++ {
			val := rng.Uint64() >> (rng.Uint64() % 64)
			buf := Append(nil, val)

			dec, n, ok := Consume(buf)
			assert.That(t, ok)
			assert.Equal(t, n, len(buf))
			assert.Equal(t, dec, val)
		}
	})
}

func TestConsumeTruncated(t *testing.T) {
	_, _, ok := Consume(nil)
	assert.That(t, !ok)

	buf := Append(nil, 1<<40)
	for i := 0; i < len(buf); i++ {
		_, _, ok := Consume(buf[:i])
		assert.That(t, !ok)
	}
}
