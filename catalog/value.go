package catalog

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Kind classifies a field value.
type Kind uint8

const (
	KindOther Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
)

// String returns the name of the kind. A kind cannot tell the TOML types
// of its non-scalar values apart; [Value.TypeName] names those.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindOther:
		return "other"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsScalar reports whether values of kind k may be the target of a
// reference.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindInteger, KindFloat, KindBoolean:
		return true
	case KindOther:
		return false
	default:
		return false
	}
}

// Value is a field value. Exactly one payload field is meaningful,
// selected by Kind.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Other any // arrays, tables, datetimes
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntegerValue returns an integer Value.
func IntegerValue(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// BooleanValue returns a boolean Value.
func BooleanValue(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// OtherValue returns a non-scalar Value wrapping v.
func OtherValue(v any) Value { return Value{Kind: KindOther, Other: v} }

// ValueOf classifies a decoded TOML value.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case string:
		return StringValue(x)
	case int64:
		return IntegerValue(x)
	case int:
		return IntegerValue(int64(x))
	case int32:
		return IntegerValue(int64(x))
	case float64:
		return FloatValue(x)
	case float32:
		return FloatValue(float64(x))
	case bool:
		return BooleanValue(x)
	case Value:
		return x
	default:
		return OtherValue(v)
	}
}

// Native returns the plain Go value held by v.
func (v Value) Native() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBoolean:
		return v.Bool
	case KindOther:
		return v.Other
	default:
		return nil
	}
}

// TypeName returns the TOML type name of v. Non-scalar values are
// distinguished further than [KindOther].
func (v Value) TypeName() string {
	if v.Kind != KindOther {
		return v.Kind.String()
	}

	switch v.Other.(type) {
	case nil:
		return "none"
	case time.Time:
		return "datetime"
	case map[string]any:
		return "table"
	case []map[string]any:
		return "array of tables"
	}

	switch reflect.TypeOf(v.Other).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "table"
	default:
		return v.Kind.String()
	}
}

// Render returns the textual form substituted for a reference to v.
// Only scalar values can be rendered.
func (v Value) Render() (string, error) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindInteger:
		return strconv.FormatInt(v.Int, 10), nil
	case KindFloat:
		return formatFloat(v.Float), nil
	case KindBoolean:
		return strconv.FormatBool(v.Bool), nil
	case KindOther:
		return "", ErrUnsupportedReferenceType.
			Wrap(fmt.Errorf("cannot render %s", v.TypeName()))
	default:
		return "", ErrUnsupportedReferenceType.
			Wrap(fmt.Errorf("cannot render %s", v.Kind))
	}
}

// String returns the rendered form of scalar values and a Go-syntax
// representation of anything else.
func (v Value) String() string {
	if s, err := v.Render(); err == nil {
		return s
	}

	return fmt.Sprintf("%v", v.Other)
}

// formatFloat renders f in plain decimal notation with the fewest digits
// that round-trip. Non-finite values use TOML spellings.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
