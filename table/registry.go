package table

import (
	"fmt"
	"sync"
)

// Metadata is the resolved, immutable mapping for one type.
type Metadata struct {
	// Table is the resolved table name.
	Table string

	// PartitionKey and RowKey are the key descriptors. Both are always
	// non-nil; a type missing either never resolves.
	PartitionKey *Column
	RowKey       *Column

	// ETag and Timestamp are the system column descriptors, nil when the
	// type does not declare them.
	ETag      *Column
	Timestamp *Column

	// Columns are the ordinary columns in declaration order.
	Columns []Column

	// SoftDeleteColumn names the logical-delete flag column, or "".
	SoftDeleteColumn string
}

// Registry resolves and memoizes per-type metadata. It is safe for
// concurrent use; a type's metadata is published at most once even when
// first use races.
type Registry struct {
	types sync.Map // type name -> *Metadata
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// MetadataFor resolves the metadata for v's type, building and caching it
// on first use. Unmappable types return a ConfigurationError wrapping
// ErrNotMappable; failures are not cached.
func (r *Registry) MetadataFor(v Schematic) (*Metadata, error) {
	name := fmt.Sprintf("%T", v)
	if m, ok := r.types.Load(name); ok {
		return m.(*Metadata), nil
	}

	m, err := buildMetadata(name, v.Schema())
	if err != nil {
		return nil, err
	}

	actual, _ := r.types.LoadOrStore(name, m)
	return actual.(*Metadata), nil
}

// buildMetadata classifies the declared columns into the resolved form.
// Classification runs declared role first, then the legacy name shim for
// ordinary columns (see systemRoleFor).
func buildMetadata(typeName string, s Schema) (*Metadata, error) {
	if s.Table == "" {
		return nil, &ConfigurationError{Type: typeName, Reason: "no table name declared"}
	}

	m := &Metadata{Table: s.Table, SoftDeleteColumn: s.SoftDeleteColumn}
	for i := range s.Columns {
		col := s.Columns[i]
		role := col.Role
		if role == RoleColumn {
			role = systemRoleFor(col.Name)
		}

		switch role {
		case RolePartitionKey:
			if m.PartitionKey != nil {
				return nil, &ConfigurationError{Type: typeName, Reason: "duplicate partition-key column"}
			}
			m.PartitionKey = &col
		case RoleRowKey:
			if m.RowKey != nil {
				return nil, &ConfigurationError{Type: typeName, Reason: "duplicate row-key column"}
			}
			m.RowKey = &col
		case RoleETag:
			if m.ETag == nil {
				m.ETag = &col
			}
		case RoleTimestamp:
			if m.Timestamp == nil {
				m.Timestamp = &col
			}
		case RoleIgnored:
		default:
			m.Columns = append(m.Columns, col)
		}
	}

	if m.PartitionKey == nil {
		return nil, &ConfigurationError{Type: typeName, Reason: "no partition-key column"}
	}
	if m.RowKey == nil {
		return nil, &ConfigurationError{Type: typeName, Reason: "no row-key column"}
	}
	return m, nil
}
