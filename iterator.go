package linkedhashmap

// Iterator - Is used to iterate over the records of a LinkedHashMap in record order, one record
// per call to Next. The map must be left alone while an iterator is open, any modification makes
// the following call to Next return an error of type ConcurrentModification.
type Iterator[K any, V any] struct {
	lhm     *LinkedHashMap[K, V]
	next    int
	reverse bool
	version uint64
}

// Items - Returns an iterator walking the record order from first to last.
func (L *LinkedHashMap[K, V]) Items() *Iterator[K, V] {
	return &Iterator[K, V]{lhm: L, next: L.orderHead, version: L.version}
}

// Reversed - Returns an iterator walking the record order from last to first.
func (L *LinkedHashMap[K, V]) Reversed() *Iterator[K, V] {
	return &Iterator[K, V]{lhm: L, next: L.orderTail, reverse: true, version: L.version}
}

// HasNext - Returns true if there are more records to be fetched from a call to Next.
func (I *Iterator[K, V]) HasNext() bool {
	return I.next != noIndex
}

// Next - Returns the next record in iteration order.
//
// It returns:
//   - key is the key of the record
//   - value is the value of the record
//   - err is of type ConcurrentModification if the map was modified after the iterator was created, or of type KeyNotFound if there are no more records when calling this function.
func (I *Iterator[K, V]) Next() (key K, value V, err error) {
	if I.version != I.lhm.version {
		err = ConcurrentModification{}
		return
	}
	if I.next == noIndex {
		err = KeyNotFound{}
		return
	}

	s := &I.lhm.slots[I.next]
	key = s.key
	value = s.value
	if I.reverse {
		I.next = s.orderPrev
	} else {
		I.next = s.orderNext
	}

	return
}
