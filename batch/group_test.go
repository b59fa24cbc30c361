package batch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/terrace/table"
)

func op(t *testing.T, tbl string, kind Kind, pk, rk string) Operation {
	t.Helper()
	rec, err := table.NewRecord(pk, rk)
	require.NoError(t, err)
	return Operation{Table: tbl, Kind: kind, Record: rec}
}

func TestGroup_SplitsAtCap(t *testing.T) {
	var ops []Operation
	for i := 0; i < 250; i++ {
		ops = append(ops, op(t, "Orders", KindInsert, "A", fmt.Sprintf("%04d", i)))
	}

	units := group(ops, 100)
	require.Len(t, units, 3)
	assert.Equal(t, 100, units[0].Size())
	assert.Equal(t, 100, units[1].Size())
	assert.Equal(t, 50, units[2].Size())

	// Each unit is a contiguous, row-key-sorted slice.
	prev := ""
	for _, u := range units {
		assert.Equal(t, "A", u.PartitionKey())
		assert.Equal(t, KindInsert, u.Kind)
		for _, o := range u.Ops {
			rk := o.Record.RowKey()
			assert.Greater(t, rk, prev)
			prev = rk
		}
	}
}

func TestGroup_NeverMixesPartitions(t *testing.T) {
	ops := []Operation{
		op(t, "Orders", KindInsert, "P1", "a"),
		op(t, "Orders", KindInsert, "P2", "b"),
		op(t, "Orders", KindInsert, "P1", "c"),
		op(t, "Orders", KindInsert, "P2", "d"),
	}

	units := group(ops, 100)
	require.Len(t, units, 2)
	assert.Equal(t, "P1", units[0].PartitionKey())
	assert.Equal(t, "P2", units[1].PartitionKey())
	assert.Equal(t, 2, units[0].Size())
	assert.Equal(t, 2, units[1].Size())
}

func TestGroup_NeverMixesKinds(t *testing.T) {
	ops := []Operation{
		op(t, "Orders", KindDelete, "A", "1"),
		op(t, "Orders", KindInsert, "A", "2"),
		op(t, "Orders", KindDelete, "A", "3"),
		op(t, "Orders", KindInsert, "A", "4"),
	}

	units := group(ops, 100)
	for _, u := range units {
		for _, o := range u.Ops {
			assert.Equal(t, u.Kind, o.Kind)
		}
	}
}

func TestGroup_SeparatesTables(t *testing.T) {
	ops := []Operation{
		op(t, "Orders", KindInsert, "A", "1"),
		op(t, "Invoices", KindInsert, "A", "2"),
	}

	units := group(ops, 100)
	require.Len(t, units, 2)
	assert.Equal(t, "Orders", units[0].Table)
	assert.Equal(t, "Invoices", units[1].Table)
}

func TestGroup_SortsByRowKeyThenKind(t *testing.T) {
	ops := []Operation{
		op(t, "Orders", KindInsert, "A", "b"),
		op(t, "Orders", KindInsert, "A", "a"),
		op(t, "Orders", KindDelete, "A", "a"),
	}

	units := group(ops, 100)
	require.Len(t, units, 3)
	// Sorted by (row key, kind): insert "a", delete "a", insert "b".
	// Every kind change cuts a new unit.
	assert.Equal(t, KindInsert, units[0].Kind)
	assert.Equal(t, []string{"a"}, rowKeys(units[0]))
	assert.Equal(t, KindDelete, units[1].Kind)
	assert.Equal(t, []string{"a"}, rowKeys(units[1]))
	assert.Equal(t, KindInsert, units[2].Kind)
	assert.Equal(t, []string{"b"}, rowKeys(units[2]))
}

func TestGroup_SizeBounds(t *testing.T) {
	var ops []Operation
	for i := 0; i < 7; i++ {
		ops = append(ops, op(t, "Orders", KindInsert, "A", fmt.Sprintf("%d", i)))
	}

	for _, u := range group(ops, 3) {
		assert.GreaterOrEqual(t, u.Size(), 1)
		assert.LessOrEqual(t, u.Size(), 3)
	}
}

func rowKeys(u *Unit) []string {
	out := make([]string, 0, len(u.Ops))
	for _, o := range u.Ops {
		out = append(out, o.Record.RowKey())
	}
	return out
}
