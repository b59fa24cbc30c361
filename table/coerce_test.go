package table_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/terrace/table"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want table.Kind
	}{
		{"string", "x", table.KindString},
		{"bool", true, table.KindBool},
		{"bytes", []byte{1}, table.KindBinary},
		{"int", 1, table.KindInt64},
		{"int32", int32(1), table.KindInt64},
		{"int64", int64(1), table.KindInt64},
		{"uint", uint(1), table.KindUint64},
		{"uint64", uint64(1), table.KindUint64},
		{"float32", float32(1), table.KindDouble},
		{"float64", 1.5, table.KindDouble},
		{"uuid", uuid.New(), table.KindGUID},
		{"time", time.Now(), table.KindTime},
		{"struct", struct{}{}, table.KindInvalid},
		{"map", map[string]int{}, table.KindInvalid},
		{"nil", nil, table.KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.KindOf(tt.v))
		})
	}
}

func TestCoerce_TextualBridge(t *testing.T) {
	id := uuid.MustParse("a2f1bb9c-37f4-4c34-9c23-7e2640b7d0a9")
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		v    any
		to   table.Kind
		want any
	}{
		{"bool to string", true, table.KindString, "true"},
		{"int to string", int64(-7), table.KindString, "-7"},
		{"uint to string", uint64(7), table.KindString, "7"},
		{"double to string", 2.5, table.KindString, "2.5"},
		{"guid to string", id, table.KindString, "a2f1bb9c-37f4-4c34-9c23-7e2640b7d0a9"},
		{"time to string", at, table.KindString, "2024-05-01T08:30:00Z"},
		{"string to bool", "true", table.KindBool, true},
		{"string to int", "-7", table.KindInt64, int64(-7)},
		{"string to uint", "7", table.KindUint64, uint64(7)},
		{"string to double", "2.5", table.KindDouble, 2.5},
		{"string to guid", "a2f1bb9c-37f4-4c34-9c23-7e2640b7d0a9", table.KindGUID, id},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Coerce(tt.v, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Numeric(t *testing.T) {
	got, err := table.Coerce(int64(5), table.KindDouble)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	got, err = table.Coerce(5.0, table.KindInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	_, err = table.Coerce(5.5, table.KindInt64)
	require.Error(t, err)

	_, err = table.Coerce(int64(-1), table.KindUint64)
	require.Error(t, err)
}

func TestCoerce_Identity(t *testing.T) {
	got, err := table.Coerce(int32(9), table.KindInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got, "identity coercion still widens")
}

func TestCoerce_NoPath(t *testing.T) {
	_, err := table.Coerce(true, table.KindGUID)
	var cerr *table.ConversionError
	require.ErrorAs(t, err, &cerr)

	_, err = table.Coerce(struct{}{}, table.KindString)
	require.ErrorAs(t, err, &cerr)
}

// Priority is an enumeration stored by name so reordering its values
// never corrupts persisted rows.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

func (p Priority) MarshalText() ([]byte, error) {
	switch p {
	case PriorityLow:
		return []byte("low"), nil
	case PriorityNormal:
		return []byte("normal"), nil
	case PriorityHigh:
		return []byte("high"), nil
	}
	return []byte("normal"), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	switch string(b) {
	case "low":
		*p = PriorityLow
	case "high":
		*p = PriorityHigh
	default:
		*p = PriorityNormal
	}
	return nil
}

func TestEncodeOpaque_TextMarshaler(t *testing.T) {
	s, err := table.EncodeOpaque(PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, "high", s)

	var p Priority
	require.NoError(t, table.DecodeOpaque(s, &p))
	assert.Equal(t, PriorityHigh, p)
}

func TestEncodeOpaque_JSONFallback(t *testing.T) {
	type address struct {
		Street string `json:"street"`
		City   string `json:"city"`
	}

	s, err := table.EncodeOpaque(address{Street: "1 Main", City: "Springfield"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"street":"1 Main","city":"Springfield"}`, s)

	var back address
	require.NoError(t, table.DecodeOpaque(s, &back))
	assert.Equal(t, "Springfield", back.City)
}
