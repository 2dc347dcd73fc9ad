package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is a real number that may be unknown. The zero value is unknown.
// Unknown is distinct from 0 and propagates through every arithmetic helper.
type Value struct {
	v  float64
	ok bool
}

// Known wraps x. NaN and infinities are stored as unknown.
func Known(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Value{}
	}
	return Value{v: x, ok: true}
}

// Unknown returns the unknown value.
func Unknown() Value {
	return Value{}
}

// FromPtr converts an optional float pointer.
func FromPtr(p *float64) Value {
	if p == nil {
		return Value{}
	}
	return Known(*p)
}

// IsKnown reports whether the value is defined.
func (v Value) IsKnown() bool {
	return v.ok
}

// Get returns the value and whether it is defined.
func (v Value) Get() (float64, bool) {
	return v.v, v.ok
}

// Or returns the value, or def when unknown.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.v
}

// Float returns the value or NaN when unknown.
func (v Value) Float() float64 {
	if !v.ok {
		return math.NaN()
	}
	return v.v
}

// Sub returns v - o.
func (v Value) Sub(o Value) Value {
	if !v.ok || !o.ok {
		return Value{}
	}
	return Known(v.v - o.v)
}

// Mul returns v * o.
func (v Value) Mul(o Value) Value {
	if !v.ok || !o.ok {
		return Value{}
	}
	return Known(v.v * o.v)
}

// Scale returns v * f.
func (v Value) Scale(f float64) Value {
	if !v.ok {
		return Value{}
	}
	return Known(v.v * f)
}

// Abs returns |v|.
func (v Value) Abs() Value {
	if !v.ok {
		return Value{}
	}
	return Known(math.Abs(v.v))
}

// AtLeast reports whether v is known and v >= threshold. Unknown fails.
func (v Value) AtLeast(threshold float64) bool {
	return v.ok && v.v >= threshold
}

func (v Value) String() string {
	if !v.ok {
		return "unknown"
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes unknown as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value{}
		return nil
	}
	var x float64
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	*v = Known(x)
	return nil
}

// ParseValue parses a textual field; empty, "nan" and "null" are unknown.
func ParseValue(s string) (Value, error) {
	switch s {
	case "", "nan", "NaN", "null", "None":
		return Value{}, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, err
	}
	return Known(x), nil
}
