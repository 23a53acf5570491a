// Package hashfunc defines how the linked hash map hashes and compares keys, together with the
// ready to use algorithms covering the common key types.
package hashfunc

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// HashAlgorithm - Interface that permits an implementation using the LinkedHashMap to supply a
// custom key hashing and equality algorithm suited for its particular key type or distribution
// of keys. It is also the only way to use key types that are not comparable, such as byte slices.
type HashAlgorithm[K any] interface {
	// HashKey - Given key it generates a 64 bit hash value. The map folds the value to 31 bits
	// before selecting a bucket, so the low bits must carry the entropy. Two keys that are equal
	// according to KeysEqual must generate the same hash value.
	HashKey(key K) uint64

	// KeysEqual - Returns whether a and b are the same key. It is consulted only after a hash
	// code match, so it may be comparatively expensive without hurting lookup times.
	KeysEqual(a, b K) bool
}

// ComparableHashAlgorithm - The internal default algorithm for comparable key types, hashing
// through the runtime hash exposed by hash/maphash. Every instance carries its own random seed,
// so two maps distribute keys identically over buckets only when they share the instance.
type ComparableHashAlgorithm[K comparable] struct {
	seed maphash.Seed
}

// NewComparableHashAlgorithm - Returns a new ComparableHashAlgorithm with a fresh random seed.
func NewComparableHashAlgorithm[K comparable]() *ComparableHashAlgorithm[K] {
	return &ComparableHashAlgorithm[K]{seed: maphash.MakeSeed()}
}

// HashKey - Given key it generates a 64 bit hash value
func (C *ComparableHashAlgorithm[K]) HashKey(key K) uint64 {
	return maphash.Comparable(C.seed, key)
}

// KeysEqual - Returns whether a and b are the same key
func (C *ComparableHashAlgorithm[K]) KeysEqual(a, b K) bool {
	return a == b
}

// StringHashAlgorithm - Algorithm for string keys hashing through xxHash. Unlike the internal
// default it is unseeded, so bucket distribution is reproducible between runs and instances.
type StringHashAlgorithm struct{}

// NewStringHashAlgorithm - Returns a new StringHashAlgorithm.
func NewStringHashAlgorithm() *StringHashAlgorithm {
	return &StringHashAlgorithm{}
}

// HashKey - Given key it generates a 64 bit hash value
func (S *StringHashAlgorithm) HashKey(key string) uint64 {
	return xxhash.Sum64String(key)
}

// KeysEqual - Returns whether a and b are the same key
func (S *StringHashAlgorithm) KeysEqual(a, b string) bool {
	return a == b
}

// ByteSliceHashAlgorithm - Algorithm for byte slice keys, a key type the internal default can not
// serve since slices are not comparable. Hashes through xxHash and compares content wise.
type ByteSliceHashAlgorithm struct{}

// NewByteSliceHashAlgorithm - Returns a new ByteSliceHashAlgorithm.
func NewByteSliceHashAlgorithm() *ByteSliceHashAlgorithm {
	return &ByteSliceHashAlgorithm{}
}

// HashKey - Given key it generates a 64 bit hash value
func (B *ByteSliceHashAlgorithm) HashKey(key []byte) uint64 {
	return xxhash.Sum64(key)
}

// KeysEqual - Returns whether a and b hold the same bytes
func (B *ByteSliceHashAlgorithm) KeysEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}
