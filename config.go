package slotset

import "math/bits"

const (
	DefaultInitialCapacity = 16
	DefaultMaxLoadFactor   = 0.7

	maxCapacity = 1 << (bits.UintSize - 2)
)

// Config is fixed when a set is initialized. Zero fields take defaults.
type Config struct {
	// InitialCapacity must be a power of two.
	InitialCapacity int

	// MaxLoadFactor bounds Len/Cap after every insert. It must be in (0, 1].
	MaxLoadFactor float64

	// Allocator accounts for slot table memory. Nil means unlimited.
	Allocator Allocator
}

// Option adjusts a Config passed to New.
type Option func(*Config)

// WithInitialCapacity sets Config.InitialCapacity.
func WithInitialCapacity(n int) Option {
	return func(c *Config) { c.InitialCapacity = n }
}

// WithMaxLoadFactor sets Config.MaxLoadFactor.
func WithMaxLoadFactor(f float64) Option {
	return func(c *Config) { c.MaxLoadFactor = f }
}

// WithAllocator sets Config.Allocator.
func WithAllocator(a Allocator) Option {
	return func(c *Config) { c.Allocator = a }
}

func (c Config) withDefaults() Config {
	if c.InitialCapacity == 0 {
		c.InitialCapacity = DefaultInitialCapacity
	}
	if c.MaxLoadFactor == 0 {
		c.MaxLoadFactor = DefaultMaxLoadFactor
	}
	return c
}

func (c Config) validate() error {
	if !isPow2(c.InitialCapacity) {
		return ErrInvalidConfig.Errorf("initial capacity %d is not a power of two", c.InitialCapacity)
	}
	if !(c.MaxLoadFactor > 0 && c.MaxLoadFactor <= 1) {
		return ErrInvalidConfig.Errorf("max load factor %v outside (0, 1]", c.MaxLoadFactor)
	}
	return nil
}

func isPow2(n int) bool { return n > 0 && n <= maxCapacity && n&(n-1) == 0 }

// np2 returns the smallest power of two >= n, or 0 if it would exceed the
// largest supported capacity.
func np2(n int) int {
	if n <= 1 {
		return 1
	}
	if n > maxCapacity {
		return 0
	}
	return 1 << (uint(bits.Len(uint(n-1))) % bits.UintSize)
}
