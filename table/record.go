package table

import (
	"time"

	"github.com/jacentio/terrace/internal/keys"
)

// ETagAny is the concurrency token that makes a write unconditional.
const ETagAny = "*"

// Record is the store-facing form of an object: the two-part key, system
// fields, and a name-to-value map holding native values or opaque JSON
// text for unsupported member types.
type Record struct {
	partitionKey string
	rowKey       string

	// Timestamp is the row's last-modified time, maintained by the
	// service. Stored in UTC.
	Timestamp time.Time

	// ETag is the concurrency token. Defaults to ETagAny.
	ETag string

	columns map[string]any
}

// NewRecord creates a record with the given keys, validating both.
func NewRecord(partitionKey, rowKey string) (*Record, error) {
	r := &Record{ETag: ETagAny, columns: make(map[string]any)}
	if err := r.SetPartitionKey(partitionKey); err != nil {
		return nil, err
	}
	if err := r.SetRowKey(rowKey); err != nil {
		return nil, err
	}
	return r, nil
}

// PartitionKey returns the record's partition key.
func (r *Record) PartitionKey() string { return r.partitionKey }

// RowKey returns the record's row key.
func (r *Record) RowKey() string { return r.rowKey }

// SetPartitionKey assigns the partition key, enforcing the service's key
// character rules.
func (r *Record) SetPartitionKey(k string) error {
	if err := keys.Validate(k); err != nil {
		return &ValidationError{Column: "PartitionKey", Reason: err.Error()}
	}
	r.partitionKey = k
	return nil
}

// SetRowKey assigns the row key, enforcing the service's key character
// rules.
func (r *Record) SetRowKey(k string) error {
	if err := keys.Validate(k); err != nil {
		return &ValidationError{Column: "RowKey", Reason: err.Error()}
	}
	r.rowKey = k
	return nil
}

// Column returns the named column's value. ok is false when the column is
// absent.
func (r *Record) Column(name string) (value any, ok bool) {
	value, ok = r.columns[name]
	return value, ok
}

// SetColumn assigns a column value. Values must be natively storable (a
// time value is normalized to UTC); nil removes the column. Projection
// encodes unsupported member types to JSON text before they reach here.
func (r *Record) SetColumn(name string, value any) error {
	if value == nil {
		delete(r.columns, name)
		return nil
	}
	v, kind := normalize(value)
	if kind == KindInvalid {
		return &ConversionError{Column: name, From: typeName(value), To: "native value"}
	}
	if t, ok := v.(time.Time); ok {
		v = t.UTC()
	}
	r.columns[name] = v
	return nil
}

// Columns returns a copy of the column map.
func (r *Record) Columns() map[string]any {
	out := make(map[string]any, len(r.columns))
	for k, v := range r.columns {
		out[k] = v
	}
	return out
}

// Len returns the number of stored columns.
func (r *Record) Len() int { return len(r.columns) }

// Deleted reports whether the named soft-delete flag column is set. A
// missing or non-boolean column counts as not deleted.
func (r *Record) Deleted(flagColumn string) bool {
	if flagColumn == "" {
		return false
	}
	v, ok := r.columns[flagColumn]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
