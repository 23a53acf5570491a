package snapshot

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/caogtaa/linkedhashmap"
	"github.com/caogtaa/linkedhashmap/hashfunc"
)

// snapshotDocument - Root of a YAML or JSON snapshot document
type snapshotDocument[K any, V any] struct {
	Count   int                    `yaml:"count" json:"count"`
	Records []snapshotRecord[K, V] `yaml:"records" json:"records"`
}

// snapshotRecord - One record in a YAML or JSON snapshot document
type snapshotRecord[K any, V any] struct {
	Key   K `yaml:"key" json:"key"`
	Value V `yaml:"value" json:"value"`
}

// buildDocument - Collects the records of the map, in record order, into a snapshot document.
func buildDocument[K any, V any](lhm *linkedhashmap.LinkedHashMap[K, V]) (doc snapshotDocument[K, V], err error) {
	doc.Count = lhm.Count()
	doc.Records = make([]snapshotRecord[K, V], 0, doc.Count)

	err = lhm.ForEachInOrder(func(key K, value V) error {
		doc.Records = append(doc.Records, snapshotRecord[K, V]{Key: key, Value: value})
		return nil
	})

	return
}

// loadDocument - Loads the records of a snapshot document, in document order, into a new map
// using the given hash algorithm.
func loadDocument[K any, V any](doc snapshotDocument[K, V], hashAlgorithm hashfunc.HashAlgorithm[K]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	if doc.Count != len(doc.Records) {
		err = fmt.Errorf("snapshot document count is %d but it holds %d records", doc.Count, len(doc.Records))
		return
	}

	lhm, err = linkedhashmap.NewWithHashAlgorithm[K, V](doc.Count, hashAlgorithm)
	if err != nil {
		return
	}

	next := 0
	err = lhm.LoadInOrder(doc.Count, func() (key K, value V, err error) {
		record := doc.Records[next]
		next++
		return record.Key, record.Value, nil
	})
	if err != nil {
		lhm = nil
		return
	}

	return
}

// WriteYAML - Writes a snapshot of the map to w as a YAML document with a count field and a
// records list in record order.
//   - w is the destination stream
//   - lhm is the map to serialize
//
// It returns:
//   - err is a standard error if the records could not be collected or encoded
func WriteYAML[K any, V any](w io.Writer, lhm *linkedhashmap.LinkedHashMap[K, V]) (err error) {
	doc, err := buildDocument(lhm)
	if err != nil {
		err = fmt.Errorf("error while collecting snapshot records: %s", err)
		return
	}

	enc := yaml.NewEncoder(w)
	err = enc.Encode(doc)
	if err != nil {
		err = fmt.Errorf("error while encoding snapshot document: %w", err)
		return
	}

	err = enc.Close()
	if err != nil {
		err = fmt.Errorf("error while closing snapshot encoder: %w", err)
		return
	}

	return
}

// ReadYAML - Reads a YAML snapshot document written by WriteYAML from r into a new map using
// the internal hash algorithm for K.
//   - r is the source stream
//
// It returns:
//   - lhm is the loaded map, holding the records in their document order
//   - err is a standard error if the document could not be decoded or is inconsistent
func ReadYAML[K comparable, V any](r io.Reader) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	return ReadYAMLWithHashAlgorithm[K, V](r, hashfunc.NewComparableHashAlgorithm[K]())
}

// ReadYAMLWithHashAlgorithm - Reads a YAML snapshot document written by WriteYAML from r into a
// new map using a custom hash algorithm.
//   - r is the source stream
//   - hashAlgorithm is a custom hash algorithm following the hashfunc.HashAlgorithm interface
//
// It returns:
//   - lhm is the loaded map, holding the records in their document order
//   - err is a standard error if the document could not be decoded or is inconsistent
func ReadYAMLWithHashAlgorithm[K any, V any](r io.Reader, hashAlgorithm hashfunc.HashAlgorithm[K]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	var doc snapshotDocument[K, V]
	err = yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		err = fmt.Errorf("error while decoding snapshot document: %w", err)
		return
	}

	lhm, err = loadDocument(doc, hashAlgorithm)

	return
}
