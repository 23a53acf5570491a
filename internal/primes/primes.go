// Package primes provides the bucket table sizes used by the linked hash map. Table sizes are
// always prime, which keeps the modulo based bucket selection well distributed also for hash
// codes that share common factors.
package primes

// MinCapacity - The bucket table size used when a map is initialized without a capacity hint.
const MinCapacity = 3

// MaxCapacity - The largest supported bucket table size, a prime just below 2^31 so any 31 bit
// hash code stays valid input to the modulo.
const MaxCapacity = 2147483629

// capacities - Ascending primes where each step roughly doubles, giving geometric growth when a
// map outgrows its current table.
var capacities = []int{
	3, 7, 11, 17, 23, 29, 37, 47, 59, 71, 89, 107, 131, 163, 197, 239, 293, 353, 431,
	521, 631, 761, 919, 1103, 1327, 1597, 1931, 2333, 2801, 3371, 4049, 4861, 5839,
	7013, 8419, 10103, 12143, 14591, 17519, 21023, 25229, 30293, 36353, 43627, 52361,
	62851, 75431, 90523, 108631, 130363, 156437, 187751, 225307, 270371, 324449,
	389357, 467237, 560689, 672827, 807403, 968897, 1162687, 1395263, 1674319,
	2009191, 2411033, 2893249, 3471899, 4166287, 4999559, 5999471, 7199369,
}

// AtLeast - Returns the smallest usable bucket table size that holds at least n records.
// Anything below MinCapacity rounds up to MinCapacity, anything beyond the fixed table is served
// by searching for the next prime, capped at MaxCapacity.
//   - n is the number of records to provide room for
func AtLeast(n int) (capacity int) {
	for _, p := range capacities {
		if p >= n {
			capacity = p
			return
		}
	}

	capacity = nextPrime(n)

	return
}

// Grown - Returns the bucket table size to use after outgrowing the current one, the smallest
// usable prime at least twice the current size.
//   - current is the bucket table size that was outgrown
func Grown(current int) (capacity int) {
	if current > MaxCapacity/2 {
		capacity = MaxCapacity
		return
	}

	capacity = AtLeast(2 * current)

	return
}

// IsPrime - Returns whether n is a prime number.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}

	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}

	return true
}

// nextPrime - Returns the smallest prime at least n, capped at MaxCapacity.
func nextPrime(n int) int {
	if n%2 == 0 {
		n++
	}

	for ; n < MaxCapacity; n += 2 {
		if IsPrime(n) {
			return n
		}
	}

	return MaxCapacity
}
