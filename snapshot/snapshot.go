// Package snapshot serializes the records of a linked hash map and loads them back, reproducing
// both content and record order. The map itself never defines a record layout, a caller supplied
// pair of record functions does, while this package owns the surrounding stream format. Next to
// the binary stream format there are YAML and JSON document codecs for snapshots meant to be
// read or edited by hand.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/caogtaa/linkedhashmap"
	"github.com/caogtaa/linkedhashmap/hashfunc"
	"github.com/caogtaa/linkedhashmap/internal/mmapfile"
)

// magicNumber - Identifies a linked hash map snapshot stream
const magicNumber uint32 = 0x4c484d53

// formatVersion - Current version of the snapshot stream format
const formatVersion uint32 = 1

// headerLength - Number of bytes in the snapshot header
const headerLength int = 16

// magicNumberOffset - Position of the magic number in the header
const magicNumberOffset int = 0

// formatVersionOffset - Position of the format version in the header
const formatVersionOffset int = 4

// recordCountOffset - Position of the record count in the header
const recordCountOffset int = 8

// streamPresizeLimit - Largest header record count used for presizing when reading from a stream
// of unknown length
const streamPresizeLimit int = 65536

// WriteRecordFunc - Writes one record to w. The function owns the record layout, the stream
// format around it is owned by this package.
type WriteRecordFunc[K any, V any] func(w io.Writer, key K, value V) error

// ReadRecordFunc - Reads one record from r, in the layout written by the corresponding
// WriteRecordFunc.
type ReadRecordFunc[K any, V any] func(r io.Reader) (key K, value V, err error)

// Write - Writes a snapshot of the map to w: a fixed header carrying a magic number, the format
// version and the record count, followed by one record per call to writeRecord, in record order.
//   - w is the destination stream
//   - lhm is the map to serialize
//   - writeRecord is called once per record, in record order
//
// It returns:
//   - err is a standard error if the header or a record could not be written
func Write[K any, V any](w io.Writer, lhm *linkedhashmap.LinkedHashMap[K, V], writeRecord WriteRecordFunc[K, V]) (err error) {
	header := make([]byte, headerLength)
	binary.BigEndian.PutUint32(header[magicNumberOffset:], magicNumber)
	binary.BigEndian.PutUint32(header[formatVersionOffset:], formatVersion)
	binary.BigEndian.PutUint64(header[recordCountOffset:], uint64(lhm.Count()))

	_, err = w.Write(header)
	if err != nil {
		err = fmt.Errorf("error while writing snapshot header: %w", err)
		return
	}

	err = lhm.ForEachInOrder(func(key K, value V) error {
		return writeRecord(w, key, value)
	})
	if err != nil {
		err = fmt.Errorf("error while writing snapshot records: %w", err)
		return
	}

	return
}

// Read - Reads a snapshot written by Write from r into a new map using the internal hash
// algorithm for K.
//   - r is the source stream
//   - readRecord is called once per stored record, in record order
//
// It returns:
//   - lhm is the loaded map, holding the records in their serialized order
//   - err is a standard error if the stream is no valid snapshot or a record could not be read
func Read[K comparable, V any](r io.Reader, readRecord ReadRecordFunc[K, V]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	return ReadWithHashAlgorithm[K, V](r, readRecord, hashfunc.NewComparableHashAlgorithm[K]())
}

// ReadWithHashAlgorithm - Reads a snapshot written by Write from r into a new map using a custom
// hash algorithm. The hash layout of the loaded map may differ from the serialized one, the
// record order never does. The header record count is used for presizing only up to a fixed
// bound, a count beyond that grows the map as records are actually read.
//   - r is the source stream
//   - readRecord is called once per stored record, in record order
//   - hashAlgorithm is a custom hash algorithm following the hashfunc.HashAlgorithm interface
//
// It returns:
//   - lhm is the loaded map, holding the records in their serialized order
//   - err is a standard error if the stream is no valid snapshot or a record could not be read
func ReadWithHashAlgorithm[K any, V any](r io.Reader, readRecord ReadRecordFunc[K, V], hashAlgorithm hashfunc.HashAlgorithm[K]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	count, err := readHeader(r)
	if err != nil {
		return
	}

	return readRecords(r, readRecord, hashAlgorithm, count, streamPresizeLimit)
}

// readRecords - Loads count records from r into a new map, in the order read. The map is presized
// for at most presize records up front, a count beyond that grows the map as records arrive, so
// the reservation never runs ahead of what the stream has delivered by more than presize.
//
// It returns:
//   - lhm is the loaded map, holding the records in their serialized order
//   - err is a standard error if a record could not be read
func readRecords[K any, V any](r io.Reader, readRecord ReadRecordFunc[K, V], hashAlgorithm hashfunc.HashAlgorithm[K], count int, presize int) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	if presize > count {
		presize = count
	}

	lhm, err = linkedhashmap.NewWithHashAlgorithm[K, V](presize, hashAlgorithm)
	if err != nil {
		return
	}

	for err == nil && lhm.Count() < count {
		chunk := count - lhm.Count()
		if most := presize + lhm.Count(); chunk > most {
			chunk = most
		}

		err = lhm.LoadInOrder(chunk, func() (key K, value V, err error) {
			return readRecord(r)
		})
	}
	if err != nil {
		lhm = nil
		err = fmt.Errorf("error while reading snapshot records: %s", err)
		return
	}

	return
}

// readHeader - Reads and validates the fixed snapshot header.
//
// It returns:
//   - count is the record count stored in the header
//   - err is a standard error if the header is short, carries the wrong magic number or an unsupported format version
func readHeader(r io.Reader) (count int, err error) {
	header := make([]byte, headerLength)
	_, err = io.ReadFull(r, header)
	if err != nil {
		err = fmt.Errorf("error while reading snapshot header: %w", err)
		return
	}

	if m := binary.BigEndian.Uint32(header[magicNumberOffset:]); m != magicNumber {
		err = fmt.Errorf("not a linkedhashmap snapshot, got magic number %#08x", m)
		return
	}
	if v := binary.BigEndian.Uint32(header[formatVersionOffset:]); v != formatVersion {
		err = fmt.Errorf("unsupported snapshot format version %d", v)
		return
	}

	count = int(binary.BigEndian.Uint64(header[recordCountOffset:]))
	if count < 0 {
		err = fmt.Errorf("invalid record count in snapshot header")
		return
	}

	return
}

// WriteFile - Writes a snapshot of the map to the file at path, replacing any existing file.
//   - path is the name of the snapshot file to create
//   - lhm is the map to serialize
//   - writeRecord is called once per record, in record order
//
// It returns:
//   - err is a standard error if the file could not be created or written
func WriteFile[K any, V any](path string, lhm *linkedhashmap.LinkedHashMap[K, V], writeRecord WriteRecordFunc[K, V]) (err error) {
	f, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("error while creating snapshot file: %w", err)
		return
	}

	w := bufio.NewWriter(f)
	err = Write(w, lhm, writeRecord)
	if err != nil {
		_ = f.Close()
		return
	}

	err = w.Flush()
	if err != nil {
		_ = f.Close()
		err = fmt.Errorf("error while flushing snapshot file: %w", err)
		return
	}

	err = f.Close()
	if err != nil {
		err = fmt.Errorf("error while closing snapshot file: %w", err)
		return
	}

	return
}

// ReadFile - Reads a snapshot file written by WriteFile into a new map using the internal hash
// algorithm for K. The file is memory mapped read only while decoding.
//   - path is the name of an existing snapshot file
//   - readRecord is called once per stored record, in record order
//
// It returns:
//   - lhm is the loaded map, holding the records in their serialized order
//   - err is a standard error if the file could not be read or is no valid snapshot
func ReadFile[K comparable, V any](path string, readRecord ReadRecordFunc[K, V]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	return ReadFileWithHashAlgorithm[K, V](path, readRecord, hashfunc.NewComparableHashAlgorithm[K]())
}

// ReadFileWithHashAlgorithm - Reads a snapshot file written by WriteFile into a new map using a
// custom hash algorithm. The file is memory mapped read only while decoding, and the header
// record count is checked against the file length before the map is sized.
//   - path is the name of an existing snapshot file
//   - readRecord is called once per stored record, in record order
//   - hashAlgorithm is a custom hash algorithm following the hashfunc.HashAlgorithm interface
//
// It returns:
//   - lhm is the loaded map, holding the records in their serialized order
//   - err is a standard error if the file could not be read or is no valid snapshot
func ReadFileWithHashAlgorithm[K any, V any](path string, readRecord ReadRecordFunc[K, V], hashAlgorithm hashfunc.HashAlgorithm[K]) (lhm *linkedhashmap.LinkedHashMap[K, V], err error) {
	data, release, err := mmapfile.Map(path)
	if err != nil {
		err = fmt.Errorf("error while mapping snapshot file: %w", err)
		return
	}
	defer func() {
		_ = release()
	}()

	r := bytes.NewReader(data)
	count, err := readHeader(r)
	if err != nil {
		return
	}

	// No record is shorter than one byte, so the mapped length bounds the plausible count
	if recordBytes := len(data) - headerLength; count > recordBytes {
		err = fmt.Errorf("snapshot header counts %d records but the file holds %d bytes of record data", count, recordBytes)
		return
	}

	return readRecords(r, readRecord, hashAlgorithm, count, count)
}
