// Package boltstore persists the records of a linked hash map in a bbolt database file and
// loads them back, reproducing both content and record order. Records are stored under a
// monotonically increasing big endian sequence key, so the natural bbolt key order of the
// records bucket is the record order of the map. Record encoding is owned by a caller supplied
// pair of record functions, the bucket layout around it is owned by this package.
package boltstore

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/caogtaa/linkedhashmap"
	"github.com/caogtaa/linkedhashmap/hashfunc"
)

// formatVersion - Current version of the store bucket layout
const formatVersion uint32 = 1

// recordsBucket - Bucket holding one entry per record, keyed by big endian sequence number
var recordsBucket = []byte("records")

// metaBucket - Bucket holding the record count and the format version
var metaBucket = []byte("meta")

// countKey - Metadata key of the big endian record count
var countKey = []byte("count")

// versionKey - Metadata key of the big endian format version
var versionKey = []byte("format")

// EncodeRecordFunc - Encodes one record to the byte slice stored in the records bucket. The
// returned slice must not be reused by later calls, bbolt keeps a reference to it until the
// transaction commits.
type EncodeRecordFunc[K any, V any] func(key K, value V) (data []byte, err error)

// DecodeRecordFunc - Decodes one record from a byte slice stored in the records bucket. The
// slice is only valid during the call, the function has to copy whatever it keeps.
type DecodeRecordFunc[K any, V any] func(data []byte) (key K, value V, err error)

// Save - Writes all records of the map to the database file at path, replacing any records
// bucket a previous save left behind. The records and the metadata are written in one
// transaction, a reader never sees a half written store.
//   - path is the name of the database file, created if it does not exist
//   - lhm is the map to persist
//   - encodeRecord is called once per record, in record order
//
// It returns:
//   - err is a standard error if the database could not be opened or written
func Save[K any, V any](path string, lhm *linkedhashmap.LinkedHashMap[K, V], encodeRecord EncodeRecordFunc[K, V]) (err error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		err = fmt.Errorf("error while opening store: %w", err)
		return
	}
	defer func() {
		cErr := db.Close()
		if err == nil && cErr != nil {
			err = fmt.Errorf("error while closing store: %w", cErr)
		}
	}()

	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(recordsBucket) != nil {
			if err := tx.DeleteBucket(recordsBucket); err != nil {
				return err
			}
		}
		records, err := tx.CreateBucket(recordsBucket)
		if err != nil {
			return err
		}

		seq := uint64(0)
		err = lhm.ForEachInOrder(func(key K, value V) error {
			data, err := encodeRecord(key, value)
			if err != nil {
				return err
			}

			seqKey := make([]byte, 8)
			binary.BigEndian.PutUint64(seqKey, seq)
			seq++

			return records.Put(seqKey, data)
		})
		if err != nil {
			return err
		}

		meta, err := tx.CreateBucketIfNotExists(metaBucket)
		if err != nil {
			return err
		}

		countBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(countBytes, uint64(lhm.Count()))
		if err := meta.Put(countKey, countBytes); err != nil {
			return err
		}

		versionBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(versionBytes, formatVersion)
		return meta.Put(versionKey, versionBytes)
	})
	if err != nil {
		err = fmt.Errorf("error while saving records: %s", err)
		return
	}

	return
}

// Load - Reads all records from the database file at path into a new map using the internal
// hash algorithm for K.
//   - path is the name of an existing database file written by Save
//   - decodeRecord is called once per stored record, in record order
//
// It returns:
//   - lhm is the loaded map, holding the records in their saved order
//   - err is a standard error if the database could not be read or is no valid store
func Load[K comparable, V any](path string, decodeRecord DecodeRecordFunc[K, V]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	return LoadWithHashAlgorithm[K, V](path, decodeRecord, hashfunc.NewComparableHashAlgorithm[K]())
}

// LoadWithHashAlgorithm - Reads all records from the database file at path into a new map using
// a custom hash algorithm. The hash layout of the loaded map may differ from the saved one, the
// record order never does. The record count in the metadata is checked against the records
// bucket before the map is sized.
//   - path is the name of an existing database file written by Save
//   - decodeRecord is called once per stored record, in record order
//   - hashAlgorithm is a custom hash algorithm following the hashfunc.HashAlgorithm interface
//
// It returns:
//   - lhm is the loaded map, holding the records in their saved order
//   - err is a standard error if the database could not be read or is no valid store
func LoadWithHashAlgorithm[K any, V any](path string, decodeRecord DecodeRecordFunc[K, V], hashAlgorithm hashfunc.HashAlgorithm[K]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		err = fmt.Errorf("error while opening store: %w", err)
		return
	}
	defer func() {
		_ = db.Close()
	}()

	err = db.View(func(tx *bolt.Tx) error {
		count, err := storedCount(tx)
		if err != nil {
			return err
		}

		records := tx.Bucket(recordsBucket)
		if records == nil && count > 0 {
			return fmt.Errorf("store counts %d records but holds no records bucket", count)
		}
		if records != nil {
			if stored := records.Stats().KeyN; stored != count {
				return fmt.Errorf("metadata counts %d records but the records bucket holds %d", count, stored)
			}
		}

		lhm, err = linkedhashmap.NewWithHashAlgorithm[K, V](count, hashAlgorithm)
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}

		cursor := records.Cursor()
		k, v := cursor.First()
		return lhm.LoadInOrder(count, func() (key K, value V, err error) {
			if k == nil {
				err = fmt.Errorf("records bucket ended early")
				return
			}

			key, value, err = decodeRecord(v)
			if err != nil {
				return
			}

			k, v = cursor.Next()
			return
		})
	})
	if err != nil {
		lhm = nil
		err = fmt.Errorf("error while loading records: %s", err)
		return
	}

	return
}

// storedCount - Reads and validates the metadata of an open store transaction.
//
// It returns:
//   - count is the record count stored in the metadata
//   - err is a standard error if the metadata is missing, malformed or of an unsupported format version
func storedCount(tx *bolt.Tx) (count int, err error) {
	meta := tx.Bucket(metaBucket)
	if meta == nil {
		err = fmt.Errorf("no metadata bucket, file is not a linkedhashmap store")
		return
	}

	versionBytes := meta.Get(versionKey)
	if len(versionBytes) != 4 {
		err = fmt.Errorf("missing or malformed format version in metadata")
		return
	}
	if v := binary.BigEndian.Uint32(versionBytes); v != formatVersion {
		err = fmt.Errorf("unsupported store format version %d", v)
		return
	}

	countBytes := meta.Get(countKey)
	if len(countBytes) != 8 {
		err = fmt.Errorf("missing or malformed record count in metadata")
		return
	}

	count = int(binary.BigEndian.Uint64(countBytes))
	if count < 0 {
		err = fmt.Errorf("invalid record count in metadata")
		return
	}

	return
}
