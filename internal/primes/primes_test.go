package primes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtLeast(t *testing.T) {
	t.Run("rounds up to the next table prime", func(t *testing.T) {
		// Execute and check
		assert.Equal(t, 3, AtLeast(0), "zero rounds to the minimal capacity")
		assert.Equal(t, 3, AtLeast(-10), "negative rounds to the minimal capacity")
		assert.Equal(t, 3, AtLeast(3), "exact table prime kept")
		assert.Equal(t, 7, AtLeast(4), "rounds up past a gap")
		assert.Equal(t, 107, AtLeast(100), "rounds up within the table")
		assert.Equal(t, 7199369, AtLeast(7000000), "rounds up to the last table prime")
	})

	t.Run("searches past the table", func(t *testing.T) {
		// Execute
		capacity := AtLeast(7199370)

		// Check
		assert.GreaterOrEqual(t, capacity, 7199370, "capacity holds the requested records")
		assert.True(t, IsPrime(capacity), "capacity is prime")
	})

	t.Run("caps at the maximum capacity", func(t *testing.T) {
		// Execute and check
		assert.Equal(t, MaxCapacity, AtLeast(MaxCapacity), "maximum capacity is served")
		assert.True(t, IsPrime(MaxCapacity), "maximum capacity is prime")
	})
}

func TestGrown(t *testing.T) {
	t.Run("at least doubles the capacity", func(t *testing.T) {
		// Execute and check
		assert.Equal(t, 7, Grown(3), "first growth step")
		assert.Equal(t, 17, Grown(7), "second growth step")

		capacity := MinCapacity
		for i := 0; i < 20; i++ {
			grown := Grown(capacity)
			assert.GreaterOrEqual(t, grown, 2*capacity, "growth is geometric")
			assert.True(t, IsPrime(grown), "grown capacity is prime")
			capacity = grown
		}
	})

	t.Run("caps at the maximum capacity", func(t *testing.T) {
		// Execute and check
		assert.Equal(t, MaxCapacity, Grown(MaxCapacity/2+1), "growth stops at the cap")
		assert.Equal(t, MaxCapacity, Grown(MaxCapacity), "cap can not grow further")
	})
}

func TestIsPrime(t *testing.T) {
	t.Run("classifies small numbers", func(t *testing.T) {
		// Execute and check
		assert.False(t, IsPrime(0), "zero is not prime")
		assert.False(t, IsPrime(1), "one is not prime")
		assert.True(t, IsPrime(2), "two is prime")
		assert.True(t, IsPrime(3), "three is prime")
		assert.False(t, IsPrime(9), "nine is composite")
		assert.True(t, IsPrime(7199369), "last table prime is prime")
	})

	t.Run("every table capacity is prime", func(t *testing.T) {
		// Execute and check
		last := 0
		for _, p := range capacities {
			assert.True(t, IsPrime(p), "table entry is prime")
			assert.Greater(t, p, last, "table is strictly ascending")
			last = p
		}
	})
}
