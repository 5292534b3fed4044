package slotset

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zeebo/assert"

	"github.com/histdb/slotset/rwutils"
)

func members[T any](s *Set[T]) (out []T) {
	for i := range s.slots {
		if s.slots[i].s == stateOccupied {
			out = append(out, s.slots[i].v)
		}
	}
	return out
}

func TestSerialize(t *testing.T) {
	s := newU32(t)
	defer s.Destroy()

	for k := U32(0); k < 100; k++ {
		_, err := s.Insert(k*3, 0)
		assert.NoError(t, err)
	}
	for k := U32(0); k < 100; k += 2 {
		_, err := s.Remove(k*3, 0)
		assert.NoError(t, err)
	}
	assert.Equal(t, s.Tombstones(), 50)

	var w rwutils.W
	AppendTo(s, &w)
	w.Uint8(1)
	w.Uint8(2)
	w.Uint8(3)

	var r rwutils.R
	r.Init(w.Done())

	s2, err := NewUint32(WithInitialCapacity(2))
	assert.NoError(t, err)
	defer s2.Destroy()

	ReadFrom(s2, &r)
	rem, err := r.Done()
	assert.NoError(t, err)
	assert.Equal(t, rem, []byte{1, 2, 3})

	assert.Equal(t, s2.Len(), 50)
	assert.Equal(t, s2.Tombstones(), 0)
	assert.That(t, s2.Load() <= s2.MaxLoad())

	want, got := members(s), members(s2)
	slices.Sort(want)
	slices.Sort(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeBytes(t *testing.T) {
	s, err := NewBytes()
	assert.NoError(t, err)
	defer s.Destroy()

	for _, k := range []string{"", "a", "hello", "hello world"} {
		_, err := s.Insert(Buf(k), uint32(len(k)))
		assert.NoError(t, err)
	}

	var w rwutils.W
	AppendTo(s, &w)
	buf := w.Done()

	s2, err := NewBytes()
	assert.NoError(t, err)
	defer s2.Destroy()

	var r rwutils.R
	r.Init(buf)
	ReadFrom(s2, &r)
	_, err = r.Done()
	assert.NoError(t, err)

	// decoded values do not alias the snapshot
	for i := range buf {
		buf[i] = 0
	}

	assert.Equal(t, s2.Len(), 4)
	for _, k := range []string{"", "a", "hello", "hello world"} {
		assert.That(t, s2.Contains(Buf(k), uint32(len(k))))
	}
}

func TestSerializeEmpty(t *testing.T) {
	var w rwutils.W
	AppendTo(new(Set[U32]), &w)
	assert.Equal(t, w.Done(), []byte{snapshotVersion, 0x00})

	s := newU32(t)
	defer s.Destroy()

	var r rwutils.R
	r.Init(w.Done())
	ReadFrom(s, &r)
	_, err := r.Done()
	assert.NoError(t, err)
	assert.Equal(t, s.Len(), 0)
}

func TestSerializeInvalid(t *testing.T) {
	encode := func(keys ...U32) []byte {
		s := newU32(t)
		defer s.Destroy()
		for _, k := range keys {
			_, err := s.Insert(k, 0)
			assert.NoError(t, err)
		}
		var w rwutils.W
		AppendTo(s, &w)
		return w.Done()
	}

	read := func(s *Set[U32], buf []byte) error {
		var r rwutils.R
		r.Init(buf)
		ReadFrom(s, &r)
		_, err := r.Done()
		return err
	}

	t.Run("Version", func(t *testing.T) {
		s := newU32(t)
		defer s.Destroy()

		buf := encode(1, 2)
		buf[0] = 99
		assert.That(t, errors.Is(read(s, buf), ErrInvalidSnapshot))
	})

	t.Run("Truncated", func(t *testing.T) {
		buf := encode(1, 2, 3)
		for i := 0; i < len(buf); i++ {
			s := newU32(t)
			assert.Error(t, read(s, buf[:i]))
			s.Destroy()
		}
	})

	t.Run("Count", func(t *testing.T) {
		s := newU32(t)
		defer s.Destroy()

		var w rwutils.W
		w.Uint8(snapshotVersion)
		w.Varint(1 << 40)
		assert.That(t, errors.Is(read(s, w.Done()), ErrInvalidSnapshot))
		assert.Equal(t, s.Cap(), DefaultInitialCapacity)
	})

	t.Run("Duplicate", func(t *testing.T) {
		s := newU32(t)
		defer s.Destroy()

		_, err := s.Insert(2, 0)
		assert.NoError(t, err)
		assert.That(t, errors.Is(read(s, encode(1, 2)), ErrDuplicateKey))
	})

	t.Run("Uninitialized", func(t *testing.T) {
		assert.That(t, errors.Is(read(new(Set[U32]), encode(1)), ErrInvalidHandle))
	})
}
