package table

import (
	"fmt"
	"time"
)

type projectOptions struct {
	keysOnly bool
}

// ProjectOption adjusts projection behavior.
type ProjectOption func(*projectOptions)

// KeysOnly stops projection once both keys are captured, skipping column
// coercion. Delete-by-identity uses this.
func KeysOnly() ProjectOption {
	return func(o *projectOptions) { o.keysOnly = true }
}

type hydrateOptions struct {
	raw bool
}

// HydrateOption adjusts hydration behavior.
type HydrateOption func(*hydrateOptions)

// Raw hydrates the record even when its soft-delete flag is set.
func Raw() HydrateOption {
	return func(o *hydrateOptions) { o.raw = true }
}

// Project turns v into its store-facing record. Key members must be
// non-nil and textually convertible; ordinary columns coerce to native
// values or fall back to JSON text.
func (r *Registry) Project(v Schematic, opts ...ProjectOption) (*Record, error) {
	var o projectOptions
	for _, opt := range opts {
		opt(&o)
	}

	meta, err := r.MetadataFor(v)
	if err != nil {
		return nil, err
	}

	pk, err := keyText(meta.PartitionKey, v)
	if err != nil {
		return nil, err
	}
	rk, err := keyText(meta.RowKey, v)
	if err != nil {
		return nil, err
	}
	rec, err := NewRecord(pk, rk)
	if err != nil {
		return nil, err
	}
	if o.keysOnly {
		return rec, nil
	}

	if meta.ETag != nil {
		if s, ok := meta.ETag.Get(v).(string); ok && s != "" {
			rec.ETag = s
		}
	}
	if meta.Timestamp != nil {
		if t, ok := meta.Timestamp.Get(v).(time.Time); ok && !t.IsZero() {
			rec.Timestamp = t.UTC()
		}
	}

	for _, col := range meta.Columns {
		val := col.Get(v)
		if val == nil {
			continue
		}
		if IsNativelyStorable(val) {
			if err := rec.SetColumn(col.Name, val); err != nil {
				return nil, err
			}
			continue
		}
		s, err := EncodeOpaque(val)
		if err != nil {
			return nil, fmt.Errorf("terrace: column %s: %w", col.Name, err)
		}
		if err := rec.SetColumn(col.Name, s); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Hydrate fills target from rec according to target's schema. Missing
// columns leave the member's zero value. Time values are handed to the
// destination in local time; UTC lives only in the record. When the
// record's soft-delete flag is set and Raw was not given, Hydrate returns
// ErrNoRepresentation and leaves target untouched.
func (r *Registry) Hydrate(rec *Record, target Schematic, opts ...HydrateOption) error {
	var o hydrateOptions
	for _, opt := range opts {
		opt(&o)
	}

	meta, err := r.MetadataFor(target)
	if err != nil {
		return err
	}
	if !o.raw && rec.Deleted(meta.SoftDeleteColumn) {
		return ErrNoRepresentation
	}

	if err := assign(meta.PartitionKey, target, rec.PartitionKey()); err != nil {
		return err
	}
	if err := assign(meta.RowKey, target, rec.RowKey()); err != nil {
		return err
	}
	if meta.ETag != nil {
		if err := assign(meta.ETag, target, rec.ETag); err != nil {
			return err
		}
	}
	if meta.Timestamp != nil && !rec.Timestamp.IsZero() {
		if err := assign(meta.Timestamp, target, rec.Timestamp.In(time.Local)); err != nil {
			return err
		}
	}

	for i := range meta.Columns {
		col := &meta.Columns[i]
		val, ok := rec.Column(col.Name)
		if !ok || val == nil {
			continue
		}
		if t, isTime := val.(time.Time); isTime {
			val = t.In(time.Local)
		}
		if err := assign(col, target, val); err != nil {
			return err
		}
	}
	return nil
}

// assign runs a column's Set accessor, tolerating write-only gaps.
func assign(col *Column, target Schematic, value any) error {
	if col.Set == nil {
		return nil
	}
	if err := col.Set(target, value); err != nil {
		return fmt.Errorf("terrace: column %s: %w", col.Name, err)
	}
	return nil
}

// keyText reads a key member and converts it to its textual form.
func keyText(col *Column, v Schematic) (string, error) {
	val := col.Get(v)
	if val == nil {
		return "", &ValidationError{Column: col.Name, Reason: "key must be non-null"}
	}
	s, err := Coerce(val, KindString)
	if err != nil {
		return "", &ValidationError{Column: col.Name, Reason: fmt.Sprintf("key value of type %s has no textual form", typeName(val))}
	}
	return s.(string), nil
}
