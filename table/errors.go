package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMappable is returned when a type cannot be mapped to a table
	// record. Every ConfigurationError unwraps to it.
	ErrNotMappable = errors.New("terrace: type is not mappable")

	// ErrNoRepresentation is returned by Hydrate when the record's
	// soft-delete flag is set and raw access was not requested.
	ErrNoRepresentation = errors.New("terrace: record has no representation")
)

// ConfigurationError reports a type whose declared schema disqualifies it
// from mapping.
type ConfigurationError struct {
	// Type is the offending Go type.
	Type string

	// Reason describes the schema defect.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("terrace: type %s is not mappable: %s", e.Type, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrNotMappable }

// ValidationError reports an unusable key value.
type ValidationError struct {
	// Column is the declared name of the key member.
	Column string

	// Reason describes the violation.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("terrace: column %s: %s", e.Column, e.Reason)
}

// ConversionError reports that no coercion path exists between two types.
type ConversionError struct {
	// Column is the column being converted, when known.
	Column string

	// From and To describe the source and destination types.
	From, To string
}

func (e *ConversionError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("terrace: column %s: no conversion from %s to %s", e.Column, e.From, e.To)
	}
	return fmt.Sprintf("terrace: no conversion from %s to %s", e.From, e.To)
}
