package linkedhashmap

// linkOrderLast - Appends slot i last in the record order.
func (L *LinkedHashMap[K, V]) linkOrderLast(i int) {
	L.slots[i].orderPrev = L.orderTail
	L.slots[i].orderNext = noIndex
	if L.orderTail == noIndex {
		L.orderHead = i
	} else {
		L.slots[L.orderTail].orderNext = i
	}
	L.orderTail = i
}

// linkOrderFirst - Puts slot i first in the record order.
func (L *LinkedHashMap[K, V]) linkOrderFirst(i int) {
	L.slots[i].orderPrev = noIndex
	L.slots[i].orderNext = L.orderHead
	if L.orderHead == noIndex {
		L.orderTail = i
	} else {
		L.slots[L.orderHead].orderPrev = i
	}
	L.orderHead = i
}

// linkOrderBefore - Puts slot i immediately before slot mark in the record order.
func (L *LinkedHashMap[K, V]) linkOrderBefore(i, mark int) {
	prev := L.slots[mark].orderPrev
	L.slots[i].orderPrev = prev
	L.slots[i].orderNext = mark
	L.slots[mark].orderPrev = i
	if prev == noIndex {
		L.orderHead = i
	} else {
		L.slots[prev].orderNext = i
	}
}

// linkOrderAfter - Puts slot i immediately after slot mark in the record order.
func (L *LinkedHashMap[K, V]) linkOrderAfter(i, mark int) {
	next := L.slots[mark].orderNext
	L.slots[i].orderPrev = mark
	L.slots[i].orderNext = next
	L.slots[mark].orderNext = i
	if next == noIndex {
		L.orderTail = i
	} else {
		L.slots[next].orderPrev = i
	}
}

// unlinkOrder - Removes slot i from the record order, patching neighbours and head/tail around it.
func (L *LinkedHashMap[K, V]) unlinkOrder(i int) {
	prev := L.slots[i].orderPrev
	next := L.slots[i].orderNext
	if prev == noIndex {
		L.orderHead = next
	} else {
		L.slots[prev].orderNext = next
	}
	if next == noIndex {
		L.orderTail = prev
	} else {
		L.slots[next].orderPrev = prev
	}
}

// MoveFirst - Moves the record stored under the given key first in the record order. The record
// stays untouched in its bucket chain, only the order links change. A successful move raises the
// version counter, so open iterators are invalidated.
//   - key is the identifier of a record
//
// It returns:
//   - moved is true if the record was moved, false if no record is stored under key
func (L *LinkedHashMap[K, V]) MoveFirst(key K) (moved bool) {
	i := L.find(key)
	if i == noIndex {
		return
	}

	L.unlinkOrder(i)
	L.linkOrderFirst(i)
	L.version++

	moved = true
	return
}

// MoveLast - Moves the record stored under the given key last in the record order. The record
// stays untouched in its bucket chain, only the order links change. A successful move raises the
// version counter, so open iterators are invalidated.
//   - key is the identifier of a record
//
// It returns:
//   - moved is true if the record was moved, false if no record is stored under key
func (L *LinkedHashMap[K, V]) MoveLast(key K) (moved bool) {
	i := L.find(key)
	if i == noIndex {
		return
	}

	L.unlinkOrder(i)
	L.linkOrderLast(i)
	L.version++

	moved = true
	return
}

// MoveBefore - Moves the record stored under key immediately before the record stored under
// markKey in the record order. Both records stay untouched in their bucket chains, only order
// links change. A successful move raises the version counter, so open iterators are invalidated.
//   - key is the identifier of the record to move
//   - markKey is the identifier of the record to move it next to
//
// It returns:
//   - moved is true if the record was moved, false if either key is not stored or both name the same record
func (L *LinkedHashMap[K, V]) MoveBefore(key K, markKey K) (moved bool) {
	i, mark := L.findPair(key, markKey)
	if i == noIndex {
		return
	}

	L.unlinkOrder(i)
	L.linkOrderBefore(i, mark)
	L.version++

	moved = true
	return
}

// MoveAfter - Moves the record stored under key immediately after the record stored under
// markKey in the record order. Both records stay untouched in their bucket chains, only order
// links change. A successful move raises the version counter, so open iterators are invalidated.
//   - key is the identifier of the record to move
//   - markKey is the identifier of the record to move it next to
//
// It returns:
//   - moved is true if the record was moved, false if either key is not stored or both name the same record
func (L *LinkedHashMap[K, V]) MoveAfter(key K, markKey K) (moved bool) {
	i, mark := L.findPair(key, markKey)
	if i == noIndex {
		return
	}

	L.unlinkOrder(i)
	L.linkOrderAfter(i, mark)
	L.version++

	moved = true
	return
}

// findPair - Locates the two slots involved in a relative move. It returns noIndex in the first
// position when either key is missing or both keys name the same record, turning the move into a
// no-op.
func (L *LinkedHashMap[K, V]) findPair(key K, markKey K) (i int, mark int) {
	i = L.find(key)
	if i == noIndex {
		return
	}

	mark = L.find(markKey)
	if mark == noIndex || mark == i {
		i = noIndex
	}

	return
}
