package linkedhashmap

// KeyNotFound - Custom error to inform that no record was found under a given key
type KeyNotFound struct {
	msg string
}

// Error - Used to notify that no record was found
func (E KeyNotFound) Error() string {
	if E.msg == "" {
		return "key not found"
	}
	return E.msg
}

// DuplicateKey - Custom error to inform that a key is already stored when only new keys are accepted
type DuplicateKey struct {
	msg string
}

// Error - Used to notify that a key is already stored
func (E DuplicateKey) Error() string {
	if E.msg == "" {
		return "duplicate key"
	}
	return E.msg
}

// InvalidCapacity - Custom error to inform that a negative capacity or record count was given
type InvalidCapacity struct {
	msg string
}

// Error - Used to notify that a capacity is invalid
func (E InvalidCapacity) Error() string {
	if E.msg == "" {
		return "capacity can not be negative"
	}
	return E.msg
}

// ConcurrentModification - Custom error to inform that the map was modified while being iterated
type ConcurrentModification struct {
	msg string
}

// Error - Used to notify that the map was modified while being iterated
func (E ConcurrentModification) Error() string {
	if E.msg == "" {
		return "map modified during iteration"
	}
	return E.msg
}
