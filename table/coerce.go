package table

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Kind tags the native value types the table service stores directly.
type Kind int

const (
	// KindInvalid marks a value with no native representation.
	KindInvalid Kind = iota
	KindString
	KindBool
	KindBinary
	KindInt64
	KindUint64
	KindDouble
	KindGUID
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindBinary:
		return "binary"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindDouble:
		return "double"
	case KindGUID:
		return "guid"
	case KindTime:
		return "time"
	}
	return "invalid"
}

// normalize widens v to its canonical native form and reports its kind.
// Smaller integer and float widths widen to the 64-bit forms.
func normalize(v any) (any, Kind) {
	switch t := v.(type) {
	case string:
		return t, KindString
	case bool:
		return t, KindBool
	case []byte:
		return t, KindBinary
	case int:
		return int64(t), KindInt64
	case int8:
		return int64(t), KindInt64
	case int16:
		return int64(t), KindInt64
	case int32:
		return int64(t), KindInt64
	case int64:
		return t, KindInt64
	case uint:
		return uint64(t), KindUint64
	case uint8:
		return uint64(t), KindUint64
	case uint16:
		return uint64(t), KindUint64
	case uint32:
		return uint64(t), KindUint64
	case uint64:
		return t, KindUint64
	case float32:
		return float64(t), KindDouble
	case float64:
		return t, KindDouble
	case uuid.UUID:
		return t, KindGUID
	case time.Time:
		return t, KindTime
	}
	return nil, KindInvalid
}

// KindOf returns the native kind of v, or KindInvalid when v is not
// natively storable.
func KindOf(v any) Kind {
	_, kind := normalize(v)
	return kind
}

// IsNativelyStorable reports whether the service can persist v without
// fallback encoding.
func IsNativelyStorable(v any) bool {
	return KindOf(v) != KindInvalid
}

type convKey struct{ from, to Kind }

// converters maps a (source, destination) kind pair to its conversion.
// Text is the universal bridge; the numeric kinds convert among
// themselves with range checks.
var converters = map[convKey]func(any) (any, error){
	{KindBool, KindString}:   func(v any) (any, error) { return strconv.FormatBool(v.(bool)), nil },
	{KindInt64, KindString}:  func(v any) (any, error) { return strconv.FormatInt(v.(int64), 10), nil },
	{KindUint64, KindString}: func(v any) (any, error) { return strconv.FormatUint(v.(uint64), 10), nil },
	{KindDouble, KindString}: func(v any) (any, error) { return strconv.FormatFloat(v.(float64), 'g', -1, 64), nil },
	{KindGUID, KindString}:   func(v any) (any, error) { return v.(uuid.UUID).String(), nil },
	{KindTime, KindString}:   func(v any) (any, error) { return v.(time.Time).UTC().Format(time.RFC3339Nano), nil },
	{KindBinary, KindString}: func(v any) (any, error) { return base64.StdEncoding.EncodeToString(v.([]byte)), nil },

	{KindString, KindBool}: func(v any) (any, error) { return strconv.ParseBool(v.(string)) },
	{KindString, KindInt64}: func(v any) (any, error) {
		return strconv.ParseInt(v.(string), 10, 64)
	},
	{KindString, KindUint64}: func(v any) (any, error) {
		return strconv.ParseUint(v.(string), 10, 64)
	},
	{KindString, KindDouble}: func(v any) (any, error) {
		return strconv.ParseFloat(v.(string), 64)
	},
	{KindString, KindGUID}: func(v any) (any, error) { return uuid.Parse(v.(string)) },
	{KindString, KindTime}: func(v any) (any, error) {
		return time.Parse(time.RFC3339Nano, v.(string))
	},
	{KindString, KindBinary}: func(v any) (any, error) {
		return base64.StdEncoding.DecodeString(v.(string))
	},

	{KindInt64, KindUint64}: func(v any) (any, error) {
		n := v.(int64)
		if n < 0 {
			return nil, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	},
	{KindUint64, KindInt64}: func(v any) (any, error) {
		n := v.(uint64)
		if n > math.MaxInt64 {
			return nil, fmt.Errorf("value %d overflows int64", n)
		}
		return int64(n), nil
	},
	{KindInt64, KindDouble}:  func(v any) (any, error) { return float64(v.(int64)), nil },
	{KindUint64, KindDouble}: func(v any) (any, error) { return float64(v.(uint64)), nil },
	{KindDouble, KindInt64}: func(v any) (any, error) {
		f := v.(float64)
		if f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
			return nil, fmt.Errorf("value %g is not an int64", f)
		}
		return int64(f), nil
	},
}

// Coerce converts v to the destination kind through the converter
// registry. Identity conversions return the normalized value unchanged.
func Coerce(v any, to Kind) (any, error) {
	nv, from := normalize(v)
	if from == KindInvalid {
		return nil, &ConversionError{From: typeName(v), To: to.String()}
	}
	if from == to {
		return nv, nil
	}
	fn, ok := converters[convKey{from, to}]
	if !ok {
		// Generic textual bridge: any pair that can reach text and
		// leave it again converts through the string form.
		toText, ok1 := converters[convKey{from, KindString}]
		fromText, ok2 := converters[convKey{KindString, to}]
		if !ok1 || !ok2 {
			return nil, &ConversionError{From: from.String(), To: to.String()}
		}
		fn = func(v any) (any, error) {
			s, err := toText(v)
			if err != nil {
				return nil, err
			}
			return fromText(s)
		}
	}
	out, err := fn(nv)
	if err != nil {
		return nil, &ConversionError{From: from.String(), To: to.String() + " (" + err.Error() + ")"}
	}
	return out, nil
}

// EncodeOpaque renders a value with no native kind for storage in a text
// column. A type providing encoding.TextMarshaler stores its textual
// form (enumerations store by name this way and survive reordering);
// everything else stores its JSON encoding.
func EncodeOpaque(v any) (string, error) {
	if tm, ok := v.(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", fmt.Errorf("marshal %T: %w", v, err)
		}
		return string(b), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %T: %w", v, err)
	}
	return string(b), nil
}

// DecodeOpaque restores a value stored by EncodeOpaque into dst, which
// must be a pointer. encoding.TextUnmarshaler is probed first, then JSON.
func DecodeOpaque(s string, dst any) error {
	if tu, ok := dst.(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(s))
	}
	return json.Unmarshal([]byte(s), dst)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
