package table

// Role classifies a column's part in the stored record.
type Role int

const (
	// RoleColumn is an ordinary named column.
	RoleColumn Role = iota

	// RolePartitionKey marks the member supplying the partition key.
	RolePartitionKey

	// RoleRowKey marks the member supplying the row key.
	RoleRowKey

	// RoleETag maps the member onto the record's concurrency token.
	RoleETag

	// RoleTimestamp maps the member onto the record's last-modified time.
	RoleTimestamp

	// RoleIgnored excludes the member from mapping entirely.
	RoleIgnored
)

func (r Role) String() string {
	switch r {
	case RoleColumn:
		return "column"
	case RolePartitionKey:
		return "partition-key"
	case RoleRowKey:
		return "row-key"
	case RoleETag:
		return "etag"
	case RoleTimestamp:
		return "timestamp"
	case RoleIgnored:
		return "ignored"
	}
	return "unknown"
}

// Column describes one member of a storable type.
//
// Get returns the member's current value; it must return nil for a null
// member (for example a nil pointer field). Set assigns a value during
// hydration and may be nil for write-only members. Set receives a native
// value, or the stored JSON/text form for members whose values are not
// natively storable; DecodeOpaque restores those.
type Column struct {
	Name string
	Role Role
	Get  func(v any) any
	Set  func(v, value any) error
}

// Schema is the declared mapping for one business type. It is built once
// per type; MetadataFor resolves and caches the validated form.
type Schema struct {
	// Table is the target table name. Required.
	Table string

	// Columns lists every mapped member in declaration order.
	Columns []Column

	// SoftDeleteColumn, when non-empty, names the boolean column whose
	// true value marks a row logically deleted instead of removed.
	SoftDeleteColumn string
}

// Schematic is implemented by types storable through this package.
type Schematic interface {
	// Schema returns the declared mapping for the type.
	Schema() Schema
}

// systemRoleFor preserves the legacy reinterpretation: an ordinary column
// whose declared name equals a system column name takes that system role.
// Existing schemas depend on this; changing it would silently remap their
// keys and columns.
func systemRoleFor(name string) Role {
	switch name {
	case "PartitionKey":
		return RolePartitionKey
	case "RowKey":
		return RoleRowKey
	case "ETag":
		return RoleETag
	case "Timestamp":
		return RoleTimestamp
	}
	return RoleColumn
}
