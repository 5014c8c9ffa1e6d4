// Package encoding maps styling parameters onto Vega-Lite channels.
//
// A styling parameter is a [Value]: either a constant (a number, a literal
// string, a dash pattern) or a reference to a row column. A [Binder] resolves
// each Value against a layer's table exactly once and records the outcome as
// a constant mark property or a channel encoding.
//
// Plain strings ([Text]) are ambiguous on purpose: "weight" binds the weight
// column when one exists and is otherwise used literally, so a colour can be
// "red" or the name of a colour attribute. Use [Field] to demand a column.
package encoding

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/netchart/pkg/table"
)

// Kind is the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindUnset Kind = iota
	KindNone
	KindNumber
	KindText
	KindField
	KindDash
	KindFields
)

var kindNames = [...]string{
	KindUnset:  "unset",
	KindNone:   "none",
	KindNumber: "number",
	KindText:   "string",
	KindField:  "field",
	KindDash:   "dash pair",
	KindFields: "field list",
}

// String returns the kind name used in error messages.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is a styling parameter. The zero value is unset, meaning the
// parameter's default applies.
type Value struct {
	kind   Kind
	num    float64
	str    string
	dash   [2]float64
	fields []string
}

// None disables a property, e.g. no fill or no dashes.
func None() Value { return Value{kind: KindNone} }

// Number is a numeric constant.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text is a column name when a column matches, else a literal string.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Field is a column reference that must resolve.
func Field(name string) Value { return Value{kind: KindField, str: name} }

// Dash is a constant dash pattern: dash length then gap length.
func Dash(dash, gap float64) Value { return Value{kind: KindDash, dash: [2]float64{dash, gap}} }

// Fields lists columns, used for tooltips.
func Fields(names ...string) Value {
	return Value{kind: KindFields, fields: append([]string(nil), names...)}
}

// Kind returns the variant.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v is unset.
func (v Value) IsZero() bool { return v.kind == KindUnset }

// Or returns v, or def when v is unset.
func (v Value) Or(def Value) Value {
	if v.kind == KindUnset {
		return def
	}
	return v
}

// Num returns the number of a KindNumber value.
func (v Value) Num() float64 { return v.num }

// Str returns the string of a KindText or KindField value.
func (v Value) Str() string { return v.str }

// DashGap returns the pattern of a KindDash value.
func (v Value) DashGap() [2]float64 { return v.dash }

// Names returns the columns of a KindFields value.
func (v Value) Names() []string { return append([]string(nil), v.fields...) }

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindText:
		return fmt.Sprintf("%q", v.str)
	case KindField:
		return "@" + v.str
	case KindDash:
		return fmt.Sprintf("[%g, %g]", v.dash[0], v.dash[1])
	case KindFields:
		return "[" + strings.Join(v.fields, ", ") + "]"
	}
	return v.kind.String()
}

// =============================================================================
// Decoding
// =============================================================================

// MarshalJSON encodes v in the form UnmarshalJSON reads.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.str)
	case KindField:
		return json.Marshal("@" + v.str)
	case KindDash:
		return json.Marshal(v.dash)
	case KindFields:
		return json.Marshal(v.fields)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes null (none), false (none), a number, a string (a
// leading "@" marks a strict field), a pair of numbers (dash) or a list of
// strings (fields).
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// UnmarshalTOML decodes the same forms as UnmarshalJSON. TOML has no null,
// so false disables a property.
func (v *Value) UnmarshalTOML(raw any) error {
	out, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// FromAny converts a decoded JSON or TOML scalar or list into a Value.
func FromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return None(), nil
	case bool:
		if !x {
			return None(), nil
		}
		return Value{}, fmt.Errorf("value: true is not a valid styling value")
	case string:
		if name, ok := strings.CutPrefix(x, "@"); ok && name != "" {
			return Field(name), nil
		}
		return Text(x), nil
	case []any:
		return fromList(x)
	}
	if f, ok := table.AsFloat(raw); ok {
		return Number(f), nil
	}
	return Value{}, fmt.Errorf("value: unsupported type %T", raw)
}

func fromList(items []any) (Value, error) {
	if len(items) == 2 {
		d, okd := table.AsFloat(items[0])
		g, okg := table.AsFloat(items[1])
		if okd && okg {
			return Dash(d, g), nil
		}
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return Value{}, fmt.Errorf("value: lists must be a pair of numbers or a list of strings")
		}
		names = append(names, strings.TrimPrefix(s, "@"))
	}
	return Fields(names...), nil
}
