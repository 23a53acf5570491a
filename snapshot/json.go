package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/caogtaa/linkedhashmap"
	"github.com/caogtaa/linkedhashmap/hashfunc"
)

// WriteJSON - Writes a snapshot of the map to w as a JSON document with a count field and a
// records list in record order.
//   - w is the destination stream
//   - lhm is the map to serialize
//
// It returns:
//   - err is a standard error if the records could not be collected or encoded
func WriteJSON[K any, V any](w io.Writer, lhm *linkedhashmap.LinkedHashMap[K, V]) (err error) {
	doc, err := buildDocument(lhm)
	if err != nil {
		err = fmt.Errorf("error while collecting snapshot records: %s", err)
		return
	}

	err = json.NewEncoder(w).Encode(doc)
	if err != nil {
		err = fmt.Errorf("error while encoding snapshot document: %w", err)
		return
	}

	return
}

// ReadJSON - Reads a JSON snapshot document written by WriteJSON from r into a new map using
// the internal hash algorithm for K.
//   - r is the source stream
//
// It returns:
//   - lhm is the loaded map, holding the records in their document order
//   - err is a standard error if the document could not be decoded or is inconsistent
func ReadJSON[K comparable, V any](r io.Reader) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	return ReadJSONWithHashAlgorithm[K, V](r, hashfunc.NewComparableHashAlgorithm[K]())
}

// ReadJSONWithHashAlgorithm - Reads a JSON snapshot document written by WriteJSON from r into a
// new map using a custom hash algorithm.
//   - r is the source stream
//   - hashAlgorithm is a custom hash algorithm following the hashfunc.HashAlgorithm interface
//
// It returns:
//   - lhm is the loaded map, holding the records in their document order
//   - err is a standard error if the document could not be decoded or is inconsistent
func ReadJSONWithHashAlgorithm[K any, V any](r io.Reader, hashAlgorithm hashfunc.HashAlgorithm[K]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	var doc snapshotDocument[K, V]
	err = json.NewDecoder(r).Decode(&doc)
	if err != nil {
		err = fmt.Errorf("error while decoding snapshot document: %w", err)
		return
	}

	lhm, err = loadDocument(doc, hashAlgorithm)

	return
}
