package batch

import "sort"

// group partitions operations into service-acceptable units: grouped by
// (table, partition key) in first-appearance order, stable-sorted by
// (row key, kind) within each group, and cut whenever the kind changes
// or the running unit reaches max. Row-key order within one call is the
// only ordering the queue guarantees.
func group(ops []Operation, max int) []*Unit {
	type groupKey struct {
		table string
		pk    string
	}

	var order []groupKey
	runs := make(map[groupKey][]Operation)
	for _, op := range ops {
		k := groupKey{op.Table, op.Record.PartitionKey()}
		if _, ok := runs[k]; !ok {
			order = append(order, k)
		}
		runs[k] = append(runs[k], op)
	}

	var units []*Unit
	for _, k := range order {
		run := runs[k]
		sort.SliceStable(run, func(i, j int) bool {
			ri, rj := run[i].Record.RowKey(), run[j].Record.RowKey()
			if ri != rj {
				return ri < rj
			}
			return run[i].Kind < run[j].Kind
		})

		var cur *Unit
		for _, op := range run {
			if cur == nil || cur.Kind != op.Kind || len(cur.Ops) >= max {
				cur = &Unit{Table: k.table, Kind: op.Kind}
				units = append(units, cur)
			}
			cur.Ops = append(cur.Ops, op)
		}
	}
	return units
}
