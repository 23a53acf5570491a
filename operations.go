package linkedhashmap

import (
	"github.com/caogtaa/linkedhashmap/internal/primes"
)

// hashOf - Returns the 31 bit hash code used in bucket selection for key. The top bits of the
// algorithm hash are folded away so the code stays non-negative, leaving unusedHash free to mark
// slots on the free list.
func (L *LinkedHashMap[K, V]) hashOf(key K) int {
	return int(L.hashAlgorithm.HashKey(key) & 0x7FFFFFFF)
}

// find - Returns the slot index holding key, or noIndex if the key is not stored. The bucket
// chain is walked comparing stored hash codes first and full keys only on a hash code match.
func (L *LinkedHashMap[K, V]) find(key K) int {
	if L.liveCount == 0 {
		return noIndex
	}

	hashCode := L.hashOf(key)
	for i := L.buckets[hashCode%len(L.buckets)]; i != noIndex; i = L.slots[i].chainNext {
		if L.slots[i].hashCode == hashCode && L.hashAlgorithm.KeysEqual(L.slots[i].key, key) {
			return i
		}
	}

	return noIndex
}

// set - Backs both Set and Add. Overwrites the value in place when the key is already stored,
// unless insertOnly. Otherwise takes the first slot off the free list, growing first when none is
// available, and links the new record first in its bucket chain and last in the record order.
func (L *LinkedHashMap[K, V]) set(key K, value V, insertOnly bool) (err error) {
	if len(L.buckets) == 0 {
		L.growTo(primes.MinCapacity)
	}

	hashCode := L.hashOf(key)
	bucketNo := hashCode % len(L.buckets)

	// Try to find an existing record with matching key
	for i := L.buckets[bucketNo]; i != noIndex; i = L.slots[i].chainNext {
		if L.slots[i].hashCode == hashCode && L.hashAlgorithm.KeysEqual(L.slots[i].key, key) {
			if insertOnly {
				err = DuplicateKey{}
				return
			}
			L.slots[i].value = value
			L.version++
			return
		}
	}

	if L.freeHead == noIndex {
		L.growTo(primes.Grown(len(L.buckets)))
		bucketNo = hashCode % len(L.buckets)
	}

	// Take the first free slot for the new record
	i := L.freeHead
	L.freeHead = L.slots[i].chainNext
	L.freeCount--

	s := &L.slots[i]
	s.hashCode = hashCode
	s.key = key
	s.value = value
	s.chainNext = L.buckets[bucketNo]
	L.buckets[bucketNo] = i
	L.linkOrderLast(i)

	L.liveCount++
	L.version++

	return
}

// Set - Stores value under key. An existing record keeps its position in the record order and
// gets its value overwritten, a new record is appended last. Either way the version counter is
// raised, so open iterators are invalidated also by a pure value overwrite.
//   - key is the identifier of a record
//   - value is the value to store along with its key
func (L *LinkedHashMap[K, V]) Set(key K, value V) {
	_ = L.set(key, value, false)
}

// Add - Stores value under a key that must not already be present. A new record is appended last
// in the record order.
//   - key is the identifier of a record
//   - value is the value to store along with its key
//
// It returns:
//   - err is of type DuplicateKey if a record is already stored under key, in which case the map is left untouched
func (L *LinkedHashMap[K, V]) Add(key K, value V) (err error) {
	return L.set(key, value, true)
}

// Get - Gets the value stored under the given key.
//   - key is the identifier of a record
//
// It returns:
//   - value is the value of the matching record if found, if not found an error of type KeyNotFound is also returned.
//   - err is of type KeyNotFound if no record is stored under key
func (L *LinkedHashMap[K, V]) Get(key K) (value V, err error) {
	i := L.find(key)
	if i == noIndex {
		err = KeyNotFound{}
		return
	}

	value = L.slots[i].value

	return
}

// TryGet - Gets the value stored under the given key, with absence reported as a bool rather
// than an error.
//   - key is the identifier of a record
//
// It returns:
//   - value is the value of the matching record, or the zero value of V if not found
//   - ok is true if a record is stored under key
func (L *LinkedHashMap[K, V]) TryGet(key K) (value V, ok bool) {
	i := L.find(key)
	if i == noIndex {
		return
	}

	value = L.slots[i].value
	ok = true

	return
}

// GetOrDefault - Gets the value stored under the given key, or def if no record is stored under it.
//   - key is the identifier of a record
//   - def is the value to return when key is not stored
func (L *LinkedHashMap[K, V]) GetOrDefault(key K, def V) (value V) {
	value, ok := L.TryGet(key)
	if !ok {
		value = def
	}

	return
}

// ContainsKey - Returns whether a record is stored under the given key.
//   - key is the identifier of a record
func (L *LinkedHashMap[K, V]) ContainsKey(key K) bool {
	return L.find(key) != noIndex
}

// ContainsValueFunc - Returns whether any record holds the given value. Values are not indexed,
// so this is a linear scan over the record order.
//   - value is the value to search for
//   - equal returns whether two values are the same
func (L *LinkedHashMap[K, V]) ContainsValueFunc(value V, equal func(a, b V) bool) bool {
	for i := L.orderHead; i != noIndex; i = L.slots[i].orderNext {
		if equal(L.slots[i].value, value) {
			return true
		}
	}

	return false
}

// ContainsValue - Returns whether any record in the map holds the given value, for maps with a
// comparable value type. Values are not indexed, so this is a linear scan over the record order.
//   - lhm is the map to search
//   - value is the value to search for
func ContainsValue[K any, V comparable](lhm *LinkedHashMap[K, V], value V) bool {
	return lhm.ContainsValueFunc(value, func(a, b V) bool { return a == b })
}

// Pop - Returns the value stored under the given key and removes the record from the map.
//   - key is the identifier of a record
//
// It returns:
//   - value is the value of the matching record if found, if not found an error of type KeyNotFound is also returned.
//   - err is of type KeyNotFound if no record is stored under key
func (L *LinkedHashMap[K, V]) Pop(key K) (value V, err error) {
	value, err = L.Get(key)
	if err != nil {
		return
	}

	L.Remove(key)

	return
}

// Remove - Removes the record stored under the given key. The slot is unlinked from its bucket
// chain and from the record order, cleared to release whatever key and value reference, and put
// first on the free list for reuse. Reinserting the key later appends it last in the record
// order like any other new record.
//   - key is the identifier of a record
//
// It returns:
//   - found is true if a record was removed, false leaves the map and its version counter untouched
func (L *LinkedHashMap[K, V]) Remove(key K) (found bool) {
	if L.liveCount == 0 {
		return
	}

	hashCode := L.hashOf(key)
	bucketNo := hashCode % len(L.buckets)

	prev := noIndex
	for i := L.buckets[bucketNo]; i != noIndex; prev, i = i, L.slots[i].chainNext {
		if L.slots[i].hashCode != hashCode || !L.hashAlgorithm.KeysEqual(L.slots[i].key, key) {
			continue
		}

		// Unlink from the bucket chain and the record order
		if prev == noIndex {
			L.buckets[bucketNo] = L.slots[i].chainNext
		} else {
			L.slots[prev].chainNext = L.slots[i].chainNext
		}
		L.unlinkOrder(i)

		// Clear the slot and put it first on the free list
		var zero slot[K, V]
		L.slots[i] = zero
		L.slots[i].hashCode = unusedHash
		L.slots[i].chainNext = L.freeHead
		L.slots[i].orderPrev = noIndex
		L.slots[i].orderNext = noIndex
		L.freeHead = i

		L.liveCount--
		L.freeCount++
		L.version++

		found = true
		return
	}

	return
}
