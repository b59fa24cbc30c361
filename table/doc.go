// Package table maps business objects onto the records of a partitioned,
// schema-less table store.
//
// Terrace targets stores addressed by a two-part key (partition key plus
// row key) with named, narrowly typed columns. The package projects an
// object's members into such a record and back, handling the store's
// native value types directly and falling back to textual or JSON
// encoding for everything else.
//
// # Declaring a schema
//
// Types declare an explicit schema instead of being reflected over. Each
// storable type implements [Schematic]:
//
//	type Order struct {
//	    Customer string
//	    ID       string
//	    Total    float64
//	}
//
//	func (Order) Schema() table.Schema {
//	    return table.Schema{
//	        Table: "orders",
//	        Columns: []table.Column{
//	            {Name: "Customer", Role: table.RolePartitionKey,
//	                Get: func(v any) any { return v.(*Order).Customer },
//	                Set: func(v, val any) error { v.(*Order).Customer = val.(string); return nil }},
//	            {Name: "ID", Role: table.RoleRowKey,
//	                Get: func(v any) any { return v.(*Order).ID },
//	                Set: func(v, val any) error { v.(*Order).ID = val.(string); return nil }},
//	            {Name: "Total",
//	                Get: func(v any) any { return v.(*Order).Total },
//	                Set: func(v, val any) error { v.(*Order).Total = val.(float64); return nil }},
//	        },
//	    }
//	}
//
// A type is mappable only if it declares a table name and exactly one
// partition-key and one row-key column. An ordinary column literally
// named "PartitionKey", "RowKey", "ETag" or "Timestamp" is reinterpreted
// as that system role; pre-existing schemas rely on this.
//
// # Projection
//
// A [Registry] resolves and caches metadata and performs the mapping:
//
//	reg := table.NewRegistry()
//	rec, err := reg.Project(&order)
//	...
//	var back Order
//	err = reg.Hydrate(rec, &back)
//
// Natively storable values (text, bool, binary, 64-bit integers, double,
// GUID, date-time) round-trip exactly. Values of other types store as
// their textual form when they implement encoding.TextMarshaler, or as
// JSON text otherwise. Date-times normalize to UTC in the record and
// come back in local time.
//
// # Soft delete
//
// A schema may name a boolean soft-delete flag column. Hydrating a
// record whose flag is set returns [ErrNoRepresentation] unless [Raw]
// access is requested; the row itself stays in the store.
//
// # Errors
//
//   - [ConfigurationError] (wraps [ErrNotMappable]) - schema defects
//   - [ValidationError] - null keys or disallowed key characters
//   - [ConversionError] - no coercion path between two types
package table
