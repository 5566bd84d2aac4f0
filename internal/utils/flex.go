package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number, boolean or null. Numbers keep
// their literal text; 0, false and null become "".
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")), bytes.Equal(b, []byte("false")):
		*f = ""
		return nil
	case bytes.Equal(b, []byte("true")):
		*f = "true"
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		// a numeric zero is falsy, so required checks reject it
		if v, err := n.Float64(); err == nil && v == 0 {
			*f = ""
			return nil
		}
		*f = FlexString(n.String())
		return nil
	default:
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
}

func (f FlexString) String() string {
	return string(f)
}

// Trimmed returns the value without surrounding whitespace.
func (f FlexString) Trimmed() string {
	return strings.TrimSpace(string(f))
}

// Truthy decodes any JSON value with the loose truthiness web clients use:
// false, null, 0, NaN and "" are false, everything else is true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = false
	case bool:
		*t = Truthy(x)
	case float64:
		*t = Truthy(x != 0 && !math.IsNaN(x))
	case string:
		*t = Truthy(x != "")
	default:
		*t = true
	}

	return nil
}

// ParseIntPrefix reads an optionally signed base-10 integer from the start of
// s, ignoring leading whitespace and any trailing garbage. ok is false when no
// digit was found.
func ParseIntPrefix(s string) (n int64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == start {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// FlexInt accepts a JSON number or a string holding a leading integer
// ("75001", "75001 Paris"). Anything unparseable decodes as 0.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			*f = 0
			return nil
		}
		*f = FlexInt(math.Trunc(x))
	case string:
		n, _ := ParseIntPrefix(x)
		*f = FlexInt(n)
	default:
		*f = 0
	}

	return nil
}

// ParseID converts a client supplied identifier to a row id. Only plain
// digits are accepted; signs, spaces and anything else map to 0, which
// matches no row.
func ParseID(s string) int64 {
	if s == "" {
		return 0
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
