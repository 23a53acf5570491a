package linkedhashmap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caogtaa/linkedhashmap/hashfunc"
)

func TestLinkedHashMap_ForEachInOrder(t *testing.T) {
	t.Run("visits all records in record order", func(t *testing.T) {
		// Prepare
		lhm := New[string, int]()
		lhm.Set("a", 1)
		lhm.Set("b", 2)
		lhm.Set("c", 3)
		lhm.MoveFirst("c")

		// Execute
		keys := make([]string, 0, 3)
		values := make([]int, 0, 3)
		err := lhm.ForEachInOrder(func(key string, value int) error {
			keys = append(keys, key)
			values = append(values, value)
			return nil
		})

		// Check
		assert.NoError(t, err, "walks all records")
		assert.Equal(t, []string{"c", "a", "b"}, keys, "keys in record order")
		assert.Equal(t, []int{3, 1, 2}, values, "values follow their keys")
	})

	t.Run("stops at the first visitor error", func(t *testing.T) {
		// Prepare
		lhm := New[string, int]()
		lhm.Set("a", 1)
		lhm.Set("b", 2)
		lhm.Set("c", 3)
		visitErr := errors.New("serializer gave up")

		// Execute
		visited := 0
		err := lhm.ForEachInOrder(func(key string, value int) error {
			visited++
			if visited == 2 {
				return visitErr
			}
			return nil
		})

		// Check
		assert.ErrorIs(t, err, visitErr, "visitor error passed along as is")
		assert.Equal(t, 2, visited, "walk stopped at the failing record")
	})

	t.Run("detects modification from within the visitor", func(t *testing.T) {
		// Prepare
		lhm := New[string, int]()
		lhm.Set("a", 1)
		lhm.Set("b", 2)

		// Execute
		err := lhm.ForEachInOrder(func(key string, value int) error {
			lhm.Set("smuggled", 99)
			return nil
		})

		// Check
		assert.ErrorIs(t, err, ConcurrentModification{}, "get correct error")
	})

	t.Run("empty map visits nothing", func(t *testing.T) {
		// Prepare
		lhm := New[string, int]()

		// Execute
		visited := 0
		err := lhm.ForEachInOrder(func(key string, value int) error {
			visited++
			return nil
		})

		// Check
		assert.NoError(t, err, "walk succeeds")
		assert.Equal(t, 0, visited, "nothing visited")
	})
}

func TestLinkedHashMap_LoadInOrder(t *testing.T) {
	t.Run("round trips a serialized map", func(t *testing.T) {
		// Prepare
		source := New[string, int]()
		for i := 0; i < 20; i++ {
			source.Set(fmt.Sprintf("key-%d", i), i)
		}
		source.MoveFirst("key-13")
		source.MoveBefore("key-5", "key-9")
		source.Remove("key-2")

		keys := make([]string, 0, source.Count())
		values := make([]int, 0, source.Count())
		err := source.ForEachInOrder(func(key string, value int) error {
			keys = append(keys, key)
			values = append(values, value)
			return nil
		})
		assert.NoError(t, err, "serializes source map")

		// Execute
		loaded := New[string, int]()
		n := 0
		err = loaded.LoadInOrder(len(keys), func() (string, int, error) {
			key, value := keys[n], values[n]
			n++
			return key, value, nil
		})

		// Check
		assert.NoError(t, err, "loads all records")
		assert.Equal(t, source.Count(), loaded.Count(), "same record count")
		assert.Equal(t, keysInOrder(t, source.Items()), keysInOrder(t, loaded.Items()), "same record order")
		for _, key := range keys {
			sourceValue, _ := source.TryGet(key)
			loadedValue, ok := loaded.TryGet(key)
			assert.True(t, ok, "record found in loaded map")
			assert.Equal(t, sourceValue, loadedValue, "correct value")
		}
	})

	t.Run("reproduces order under a different hash layout", func(t *testing.T) {
		// Prepare
		source := New[string, int]()
		for i := 0; i < 10; i++ {
			source.Set(fmt.Sprintf("key-%d", i), i)
		}
		source.MoveLast("key-0")

		keys := make([]string, 0, source.Count())
		err := source.ForEachInOrder(func(key string, value int) error {
			keys = append(keys, key)
			return nil
		})
		assert.NoError(t, err, "serializes source map")

		// Execute
		loaded, err := NewWithHashAlgorithm[string, int](0, hashfunc.NewStringHashAlgorithm())
		assert.NoError(t, err, "creates map with different algorithm")
		n := 0
		err = loaded.LoadInOrder(len(keys), func() (string, int, error) {
			key := keys[n]
			n++
			return key, n - 1, nil
		})

		// Check
		assert.NoError(t, err, "loads all records")
		assert.Equal(t, keys, keysInOrder(t, loaded.Items()), "record order independent of hash layout")
	})

	t.Run("pre sizes for the produced records", func(t *testing.T) {
		// Prepare
		lhm := New[string, int]()

		// Execute
		err := lhm.LoadInOrder(100, func() (string, int, error) {
			n := lhm.Count()
			return fmt.Sprintf("key-%d", n), n, nil
		})

		// Check
		assert.NoError(t, err, "loads all records")
		assert.Equal(t, 100, lhm.Count(), "all records loaded")
		assert.Equal(t, 107, lhm.Capacity(), "single growth step up front")
	})

	t.Run("throws correct error when count is negative", func(t *testing.T) {
		// Prepare
		lhm := New[string, int]()

		// Execute
		err := lhm.LoadInOrder(-1, func() (string, int, error) {
			return "", 0, nil
		})

		// Check
		assert.ErrorIs(t, err, InvalidCapacity{}, "get correct error")
	})

	t.Run("wraps the error from produce", func(t *testing.T) {
		// Prepare
		lhm := New[string, int]()
		produceErr := errors.New("stream cut short")

		// Execute
		n := 0
		err := lhm.LoadInOrder(5, func() (string, int, error) {
			n++
			if n == 3 {
				return "", 0, produceErr
			}
			return fmt.Sprintf("key-%d", n), n, nil
		})

		// Check
		assert.Error(t, err, "load fails")
		assert.Contains(t, err.Error(), "record 3 of 5", "error names the failing record")
		assert.Equal(t, 2, lhm.Count(), "records loaded before the failure stay in place")
	})

	t.Run("throws correct error when produce repeats a key", func(t *testing.T) {
		// Prepare
		lhm := New[string, int]()

		// Execute
		n := 0
		err := lhm.LoadInOrder(3, func() (string, int, error) {
			n++
			return "same", n, nil
		})

		// Check
		assert.ErrorIs(t, err, DuplicateKey{}, "get correct error")
	})
}
