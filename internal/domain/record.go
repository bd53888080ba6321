package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldID is the key holding a record's identifier.
const FieldID = "id"

// ErrNotObject is returned when a JSON payload is not an object.
var ErrNotObject = errors.New("json payload is not an object")

// Record is one user entry as stored. Fields beyond the typed User are kept
// verbatim so that permissive writes round-trip.
type Record map[string]any

// Collection is the full ordered dataset.
type Collection []Record

// ID returns the integer id of the record, if it has one.
func (r Record) ID() (int, bool) {
	switch v := r[FieldID].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// HasID reports whether the record's id equals id.
func (r Record) HasID(id int) bool {
	got, ok := r.ID()
	return ok && got == id
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge overlays patch on a copy of r. The id of r always wins.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	for k, v := range patch {
		if k == FieldID {
			continue
		}
		out[k] = v
	}
	return out
}

// Clone deep-copies the collection at record level.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, r := range c {
		out[i] = r.Clone()
	}
	return out
}

// IndexOf returns the position of the first record with id, or -1.
func (c Collection) IndexOf(id int) int {
	for i, r := range c {
		if r.HasID(id) {
			return i
		}
	}
	return -1
}

// Without returns the records whose id differs from id.
func (c Collection) Without(id int) Collection {
	out := make(Collection, 0, len(c))
	for _, r := range c {
		if r.HasID(id) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// NextID returns one more than the largest numeric id, or 1 if there is none.
// Not safe against writers outside the calling process.
func (c Collection) NextID() int {
	maxID := 0
	for _, r := range c {
		if id, ok := r.ID(); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// ParseID converts a path segment into a record id.
func ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return id, true
}

// DecodeRecord parses a JSON object. An empty payload yields an empty record.
func DecodeRecord(data []byte) (Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Record{}, nil
	}
	var raw any
	if err := decodeNumbers(data, &raw); err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Record(obj), nil
}

// DecodeCollection parses a top-level JSON array of objects.
func DecodeCollection(data []byte) (Collection, error) {
	var raw []map[string]any
	if err := decodeNumbers(data, &raw); err != nil {
		return nil, err
	}
	out := make(Collection, 0, len(raw))
	for i, obj := range raw {
		if obj == nil {
			return nil, fmt.Errorf("record %d: %w", i, ErrNotObject)
		}
		out = append(out, Record(obj))
	}
	return out, nil
}

// EncodeCollection renders the collection with two-space indentation.
func EncodeCollection(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	return json.MarshalIndent(c, "", "  ")
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after json value")
	}
	return nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
