package batch

import (
	"github.com/jacentio/terrace/table"
)

// Kind identifies the intent of a queued operation.
type Kind int

const (
	KindInsert Kind = iota
	KindInsertOrMerge
	KindInsertOrReplace
	KindMerge
	KindReplace
	KindDelete

	// KindRetrieve is the read kind. The write-behind queue rejects it;
	// it exists so callers sharing one operation vocabulary with the
	// synchronous paths get a typed rejection instead of silent misuse.
	KindRetrieve
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindInsertOrMerge:
		return "insert-or-merge"
	case KindInsertOrReplace:
		return "insert-or-replace"
	case KindMerge:
		return "merge"
	case KindReplace:
		return "replace"
	case KindDelete:
		return "delete"
	case KindRetrieve:
		return "retrieve"
	}
	return "unknown"
}

// Operation is one pending write against a table.
type Operation struct {
	Table  string
	Kind   Kind
	Record *table.Record
}

// Unit is an ordered run of operations the service accepts as one atomic
// batch: same table, same partition key, same operation kind, at most
// the configured size cap. Units are consumed exactly once and never
// retried.
type Unit struct {
	Table string
	Kind  Kind
	Ops   []Operation
}

// PartitionKey returns the unit's shared partition key.
func (u *Unit) PartitionKey() string {
	return u.Ops[0].Record.PartitionKey()
}

// FirstRowKey returns the row key of the unit's first member, used in
// progress notifications.
func (u *Unit) FirstRowKey() string {
	return u.Ops[0].Record.RowKey()
}

// Size returns the number of operations in the unit.
func (u *Unit) Size() int { return len(u.Ops) }

// NewOperation projects v through the mapping registry and wraps it as a
// pending operation. Deletes project only the keys; a delete of a type
// whose schema declares a soft-delete column becomes a merge that raises
// the flag, leaving the row in place.
func NewOperation(reg *table.Registry, tableName string, kind Kind, v table.Schematic) (Operation, error) {
	if kind == KindDelete {
		meta, err := reg.MetadataFor(v)
		if err != nil {
			return Operation{}, err
		}
		rec, err := reg.Project(v, table.KeysOnly())
		if err != nil {
			return Operation{}, err
		}
		if meta.SoftDeleteColumn != "" {
			if err := rec.SetColumn(meta.SoftDeleteColumn, true); err != nil {
				return Operation{}, err
			}
			kind = KindMerge
		}
		return Operation{Table: tableName, Kind: kind, Record: rec}, nil
	}

	rec, err := reg.Project(v)
	if err != nil {
		return Operation{}, err
	}
	return Operation{Table: tableName, Kind: kind, Record: rec}, nil
}

// Per-kind constructors for callers that prefer the intent in the name.

func Insert(reg *table.Registry, tableName string, v table.Schematic) (Operation, error) {
	return NewOperation(reg, tableName, KindInsert, v)
}

func InsertOrMerge(reg *table.Registry, tableName string, v table.Schematic) (Operation, error) {
	return NewOperation(reg, tableName, KindInsertOrMerge, v)
}

func InsertOrReplace(reg *table.Registry, tableName string, v table.Schematic) (Operation, error) {
	return NewOperation(reg, tableName, KindInsertOrReplace, v)
}

func Merge(reg *table.Registry, tableName string, v table.Schematic) (Operation, error) {
	return NewOperation(reg, tableName, KindMerge, v)
}

func Replace(reg *table.Registry, tableName string, v table.Schematic) (Operation, error) {
	return NewOperation(reg, tableName, KindReplace, v)
}

func Delete(reg *table.Registry, tableName string, v table.Schematic) (Operation, error) {
	return NewOperation(reg, tableName, KindDelete, v)
}
