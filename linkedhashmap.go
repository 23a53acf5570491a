// Package linkedhashmap implements a hash map that maintains a stable, caller controlled record
// order next to constant time key lookup. Lookup is served by a bucket table with separate
// chaining and record order by a doubly linked list, both threaded through the same backing slot
// array using integer indexes in place of pointers. Growing the map copies the slot array
// verbatim into a larger one, so indexes and thereby both link structures survive growth
// untouched.
//
// New records are appended last in the record order, overwriting a value keeps the record where
// it is, and the Move operations rearrange records freely without touching the hash structure.
//
// A LinkedHashMap is not safe for concurrent use. A single owner drives it, and open iterators
// detect modifications through a version counter rather than locking.
package linkedhashmap

import (
	"fmt"

	"github.com/caogtaa/linkedhashmap/hashfunc"
	"github.com/caogtaa/linkedhashmap/internal/primes"
)

// noIndex - Marks the end of a bucket chain, the end of the record order, an empty head or tail,
// and an exhausted free list.
const noIndex = -1

// unusedHash - The hash code carried by a slot on the free list. Live slots always carry a
// non-negative hash code, making the two states distinguishable without a separate flag.
const unusedHash = -1

// slot - One record position in the backing array. A live slot is a member of exactly one bucket
// chain and holds exactly one position in the record order. A free slot is a member of the free
// list, with chainNext reused as the free list link.
type slot[K any, V any] struct {
	hashCode  int
	chainNext int
	orderPrev int
	orderNext int
	key       K
	value     V
}

// MapStat - Statistics on the overall usage and distribution over buckets
//   - Records is the number of records stored
//   - FreeSlots is the number of allocated slots currently available for reuse
//   - Capacity is the bucket table size, which is also the number of records the map holds before growing
//   - BucketDistribution is the number of records chained to each bucket
type MapStat struct {
	Records            int
	FreeSlots          int
	Capacity           int
	BucketDistribution []int
}

// LinkedHashMap - The main implementation struct
type LinkedHashMap[K any, V any] struct {
	hashAlgorithm hashfunc.HashAlgorithm[K]
	buckets       []int
	slots         []slot[K, V]
	orderHead     int
	orderTail     int
	freeHead      int
	liveCount     int
	freeCount     int
	version       uint64
}

// New - Returns a new empty LinkedHashMap using the internal hash algorithm for K. Backing
// storage is allocated on the first insert.
func New[K comparable, V any]() *LinkedHashMap[K, V] {
	lhm, _ := NewWithHashAlgorithm[K, V](0, hashfunc.NewComparableHashAlgorithm[K]())
	return lhm
}

// NewWithCapacity - Returns a new empty LinkedHashMap using the internal hash algorithm for K,
// pre sized so that at least initialCapacity records can be stored before the map has to grow.
//   - initialCapacity is the number of records to prepare room for, 0 defers allocation to the first insert
//
// It returns:
//   - lhm is a pointer to a LinkedHashMap struct
//   - err is of type InvalidCapacity if initialCapacity is negative
func NewWithCapacity[K comparable, V any](initialCapacity int) (lhm *LinkedHashMap[K, V], err error) {
	return NewWithHashAlgorithm[K, V](initialCapacity, hashfunc.NewComparableHashAlgorithm[K]())
}

// NewWithHashAlgorithm - Returns a new empty LinkedHashMap using a custom hash algorithm. This is
// also the constructor for key types that are not comparable, such as byte slices, which the
// internal algorithm can not serve.
//   - initialCapacity is the number of records to prepare room for, 0 defers allocation to the first insert
//   - hashAlgorithm is a custom hash algorithm following the hashfunc.HashAlgorithm interface
//
// It returns:
//   - lhm is a pointer to a LinkedHashMap struct
//   - err is of type InvalidCapacity if initialCapacity is negative, or a standard error if hashAlgorithm is nil
func NewWithHashAlgorithm[K any, V any](initialCapacity int, hashAlgorithm hashfunc.HashAlgorithm[K]) (lhm *LinkedHashMap[K, V], err error) {
	// Check if initialCapacity is valid
	if initialCapacity < 0 {
		err = InvalidCapacity{}
		return
	}

	// Check if a hash algorithm is present
	if hashAlgorithm == nil {
		err = fmt.Errorf("hashAlgorithm can not be nil, use New or NewWithCapacity for the internal algorithm")
		return
	}

	lhm = &LinkedHashMap[K, V]{
		hashAlgorithm: hashAlgorithm,
		orderHead:     noIndex,
		orderTail:     noIndex,
		freeHead:      noIndex,
	}

	if initialCapacity > 0 {
		lhm.growTo(primes.AtLeast(initialCapacity))
	}

	return
}

// Count - Returns the number of records stored
func (L *LinkedHashMap[K, V]) Count() int {
	return L.liveCount
}

// Capacity - Returns the current bucket table size, which is also the number of records the map
// can hold before it grows. 0 until the first insert when no initial capacity was given.
func (L *LinkedHashMap[K, V]) Capacity() int {
	return len(L.buckets)
}

// Reserve - Grows the map up front so that at least n records can be stored before it has to
// grow again. Slot indexes are preserved, so unlike the record operations it leaves open
// iterators valid.
//   - n is the total number of records to prepare room for, counting records already stored
//
// It returns:
//   - err is of type InvalidCapacity if n is negative
func (L *LinkedHashMap[K, V]) Reserve(n int) (err error) {
	if n < 0 {
		err = InvalidCapacity{}
		return
	}
	if n == 0 {
		return
	}

	if capacity := primes.AtLeast(n); capacity > len(L.buckets) {
		L.growTo(capacity)
	}

	return
}

// Clear - Removes every record while keeping the allocated capacity. Keys and values are zeroed
// to release whatever they reference. Open iterators are invalidated.
func (L *LinkedHashMap[K, V]) Clear() {
	if L.liveCount == 0 {
		return
	}

	for i := range L.buckets {
		L.buckets[i] = noIndex
	}

	// Relink every slot on the free list in ascending slot order
	var zero slot[K, V]
	L.freeHead = noIndex
	for i := len(L.slots) - 1; i >= 0; i-- {
		L.slots[i] = zero
		L.slots[i].hashCode = unusedHash
		L.slots[i].chainNext = L.freeHead
		L.slots[i].orderPrev = noIndex
		L.slots[i].orderNext = noIndex
		L.freeHead = i
	}
	L.freeCount = len(L.slots)

	L.orderHead = noIndex
	L.orderTail = noIndex
	L.liveCount = 0
	L.version++
}

// Stat - Walks the bucket table and produces a MapStat struct with usage information. With a very
// large map the BucketDistribution slice can be memory heavy (there will be one entry per bucket).
//   - includeDistribution set to true will include a slice of length Capacity with number of records per bucket, false will set MapStat.BucketDistribution to nil.
func (L *LinkedHashMap[K, V]) Stat(includeDistribution bool) (mapStat *MapStat) {
	mapStat = &MapStat{
		Records:   L.liveCount,
		FreeSlots: L.freeCount,
		Capacity:  len(L.buckets),
	}

	if includeDistribution {
		mapStat.BucketDistribution = make([]int, len(L.buckets))
		for i := range L.buckets {
			for j := L.buckets[i]; j != noIndex; j = L.slots[j].chainNext {
				mapStat.BucketDistribution[i]++
			}
		}
	}

	return
}

// Rebuild - Returns a new map holding the same records in the same record order, optionally
// re-sized and re-keyed by another hash algorithm. Useful when the initial capacity estimate was
// way off and much of the slot array sits unused, or when a better hash algorithm has been found
// for the particular set of keys.
//   - initialCapacity is the initial capacity of the new map, 0 sizes it to the current record count
//   - hashAlgorithm is the algorithm for the new map, nil keeps the current one
//
// It returns:
//   - lhm is a pointer to the new LinkedHashMap struct
//   - err is of type InvalidCapacity if initialCapacity is negative
func (L *LinkedHashMap[K, V]) Rebuild(initialCapacity int, hashAlgorithm hashfunc.HashAlgorithm[K]) (lhm *LinkedHashMap[K, V], err error) {
	if hashAlgorithm == nil {
		hashAlgorithm = L.hashAlgorithm
	}
	if initialCapacity == 0 {
		initialCapacity = L.liveCount
	}

	lhm, err = NewWithHashAlgorithm[K, V](initialCapacity, hashAlgorithm)
	if err != nil {
		return
	}

	err = L.ForEachInOrder(func(key K, value V) error {
		return lhm.Add(key, value)
	})
	if err != nil {
		lhm = nil
		return
	}

	return
}

// growTo - Replaces the backing arrays with larger ones of the given bucket table size, which
// must come from the primes package. The slot array is copied verbatim, keeping every slot index
// valid, then the bucket table is rebuilt by rehashing live slots in slot order, and finally the
// free list is rebuilt to cover recycled as well as newly added slots.
func (L *LinkedHashMap[K, V]) growTo(capacity int) {
	if capacity <= len(L.buckets) {
		return
	}

	first := len(L.slots)
	slots := make([]slot[K, V], capacity)
	copy(slots, L.slots)
	L.slots = slots

	L.buckets = make([]int, capacity)
	for i := range L.buckets {
		L.buckets[i] = noIndex
	}
	for i := 0; i < first; i++ {
		if L.slots[i].hashCode != unusedHash {
			bucketNo := L.slots[i].hashCode % capacity
			L.slots[i].chainNext = L.buckets[bucketNo]
			L.buckets[bucketNo] = i
		}
	}

	// Relink free slots in ascending slot order
	L.freeHead = noIndex
	L.freeCount = 0
	for i := capacity - 1; i >= 0; i-- {
		if i < first && L.slots[i].hashCode != unusedHash {
			continue
		}
		s := &L.slots[i]
		s.hashCode = unusedHash
		s.chainNext = L.freeHead
		s.orderPrev = noIndex
		s.orderNext = noIndex
		L.freeHead = i
		L.freeCount++
	}
}
