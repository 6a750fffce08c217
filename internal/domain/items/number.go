package items

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type numberKind uint8

const (
	kindAbsent numberKind = iota
	kindNumber
	kindString
)

// Number is a price or quantity as it travelled over the wire. Clients may
// send a JSON number, a numeric string, null, or nothing at all; the kind is
// kept because only real numbers satisfy the checked-item price rule.
type Number struct {
	kind  numberKind
	value float64
	text  string
}

// NumberOf returns a JSON-number typed value.
func NumberOf(value float64) Number {
	return Number{kind: kindNumber, value: value}
}

// NumberFromString returns a string typed value. Unparseable text is kept
// as-is and coerces to the caller's fallback.
func NumberFromString(text string) Number {
	n := Number{kind: kindString, text: text, value: math.NaN()}
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
		n.value = parsed
	}
	return n
}

func (n Number) IsSet() bool {
	return n.kind != kindAbsent
}

// IsNumber reports whether the value arrived as a finite JSON number.
func (n Number) IsNumber() bool {
	return n.kind == kindNumber && !math.IsNaN(n.value) && !math.IsInf(n.value, 0)
}

// Float returns the numeric value and whether one could be parsed.
func (n Number) Float() (float64, bool) {
	if n.kind == kindAbsent || math.IsNaN(n.value) || math.IsInf(n.value, 0) {
		return 0, false
	}
	return n.value, true
}

// FloatOr coerces the value to a float, using fallback when it is absent or
// unparseable.
func (n Number) FloatOr(fallback float64) float64 {
	if value, ok := n.Float(); ok {
		return value
	}
	return fallback
}

// Truthy follows the loose presence check used for totals: absent, zero, NaN
// and empty strings are all false.
func (n Number) Truthy() bool {
	switch n.kind {
	case kindNumber:
		return n.value != 0 && !math.IsNaN(n.value)
	case kindString:
		return n.text != ""
	default:
		return false
	}
}

func (n Number) String() string {
	switch n.kind {
	case kindNumber:
		return strconv.FormatFloat(n.value, 'f', -1, 64)
	case kindString:
		return n.text
	default:
		return ""
	}
}

func (n Number) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case kindNumber:
		if !n.IsNumber() {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
	case kindString:
		return json.Marshal(n.text)
	default:
		return []byte("null"), nil
	}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*n = Number{}
		return nil
	case data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*n = NumberFromString(text)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("expected number or numeric string, got %s", data)
	}
	*n = NumberOf(value)
	return nil
}
