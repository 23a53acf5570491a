package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caogtaa/linkedhashmap"
)

func TestWriteReadYAML(t *testing.T) {
	t.Run("yaml round trip preserves records and order", func(t *testing.T) {
		// Prepare
		original, keys := reorderedFixture(t)
		buf := bytes.NewBuffer(nil)

		// Execute
		err := WriteYAML(buf, original)
		assert.NoError(t, err, "error writing yaml snapshot")

		loaded, err := ReadYAML[string, int](buf)

		// Check
		assert.NoError(t, err, "error reading yaml snapshot")
		assert.Equal(t, keys, mapKeysInOrder(t, loaded), "loaded record order differs")
	})

	t.Run("yaml document lists records in record order", func(t *testing.T) {
		// Prepare
		lhm := linkedhashmap.New[string, int]()
		lhm.Set("first", 1)
		lhm.Set("second", 2)
		lhm.MoveFirst("second")
		buf := bytes.NewBuffer(nil)

		// Execute
		err := WriteYAML(buf, lhm)

		// Check
		assert.NoError(t, err, "error writing yaml snapshot")
		doc := buf.String()
		assert.Contains(t, doc, "count: 2", "document should carry the record count")
		assert.Less(t, strings.Index(doc, "second"), strings.Index(doc, "first"), "records should appear in record order")
	})

	t.Run("yaml document with struct values round trips", func(t *testing.T) {
		// Prepare
		type endpoint struct {
			Host string `yaml:"host" json:"host"`
			Port int    `yaml:"port" json:"port"`
		}

		original := linkedhashmap.New[string, endpoint]()
		original.Set("primary", endpoint{Host: "db1.local", Port: 5432})
		original.Set("replica", endpoint{Host: "db2.local", Port: 5433})
		buf := bytes.NewBuffer(nil)

		// Execute
		err := WriteYAML(buf, original)
		assert.NoError(t, err, "error writing yaml snapshot")

		loaded, err := ReadYAML[string, endpoint](buf)

		// Check
		assert.NoError(t, err, "error reading yaml snapshot")
		value, err := loaded.Get("replica")
		assert.NoError(t, err, "loaded map misses key")
		assert.Equal(t, endpoint{Host: "db2.local", Port: 5433}, value, "loaded struct value differs")
	})

	t.Run("count and records length mismatch is rejected", func(t *testing.T) {
		// Prepare
		doc := "count: 3\nrecords:\n  - key: solo\n    value: 1\n"

		// Execute
		_, err := ReadYAML[string, int](strings.NewReader(doc))

		// Check
		assert.Error(t, err, "expected count mismatch error")
		assert.Contains(t, err.Error(), "holds 1 records", "unexpected error text")
	})

	t.Run("malformed yaml gives an error", func(t *testing.T) {
		// Execute
		_, err := ReadYAML[string, int](strings.NewReader(":\n  - not a document"))

		// Check
		assert.Error(t, err, "expected decode error")
	})
}

func TestWriteReadJSON(t *testing.T) {
	t.Run("json round trip preserves records and order", func(t *testing.T) {
		// Prepare
		original, keys := reorderedFixture(t)
		buf := bytes.NewBuffer(nil)

		// Execute
		err := WriteJSON(buf, original)
		assert.NoError(t, err, "error writing json snapshot")

		loaded, err := ReadJSON[string, int](buf)

		// Check
		assert.NoError(t, err, "error reading json snapshot")
		assert.Equal(t, keys, mapKeysInOrder(t, loaded), "loaded record order differs")
	})

	t.Run("count and records length mismatch is rejected", func(t *testing.T) {
		// Prepare
		doc := `{"count": 2, "records": [{"key": "solo", "value": 1}]}`

		// Execute
		_, err := ReadJSON[string, int](strings.NewReader(doc))

		// Check
		assert.Error(t, err, "expected count mismatch error")
	})

	t.Run("duplicate keys in a document are rejected", func(t *testing.T) {
		// Prepare
		doc := `{"count": 2, "records": [{"key": "twin", "value": 1}, {"key": "twin", "value": 2}]}`

		// Execute
		_, err := ReadJSON[string, int](strings.NewReader(doc))

		// Check
		assert.ErrorIs(t, err, linkedhashmap.DuplicateKey{}, "expected duplicate key error")
	})
}
