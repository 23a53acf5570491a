package linkedhashmap

import "fmt"

// ForEachInOrder - Walks all records from first to last, handing each key and value to visitor.
// This is the read side of persistence, where a serializer typically writes its record count
// followed by one record per call. The walk stops at the first error from visitor, which is
// passed along as is.
//   - visitor is called once per record, in record order
//
// It returns:
//   - err is the error from visitor, or of type ConcurrentModification if visitor modified the map
func (L *LinkedHashMap[K, V]) ForEachInOrder(visitor func(key K, value V) error) (err error) {
	version := L.version
	for i := L.orderHead; i != noIndex; i = L.slots[i].orderNext {
		err = visitor(L.slots[i].key, L.slots[i].value)
		if err != nil {
			return
		}
		if L.version != version {
			err = ConcurrentModification{}
			return
		}
	}

	return
}

// LoadInOrder - Appends count records handed over by produce, in the order produced. This is the
// write side of persistence, where a deserializer reads its stored record count and then hands
// records back one call at a time, which reproduces both content and record order of the map
// once serialized. The map is grown up front to give all produced records room without further
// growth. A failed load leaves the records loaded so far in place.
//   - count is the number of records to load
//   - produce returns the next record, called count times
//
// It returns:
//   - err is of type InvalidCapacity if count is negative, of type DuplicateKey if a produced key is already stored, or the error from produce wrapped in a standard error
func (L *LinkedHashMap[K, V]) LoadInOrder(count int, produce func() (key K, value V, err error)) (err error) {
	if count < 0 {
		err = InvalidCapacity{}
		return
	}

	err = L.Reserve(L.liveCount + count)
	if err != nil {
		return
	}

	var key K
	var value V
	for n := 0; n < count; n++ {
		key, value, err = produce()
		if err != nil {
			err = fmt.Errorf("error while producing record %d of %d: %s", n+1, count, err)
			return
		}

		err = L.Add(key, value)
		if err != nil {
			return
		}
	}

	return
}
