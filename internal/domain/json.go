package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The remote API is loosely typed: ids arrive as numbers or strings and
// numeric fields may be missing, null, quoted or negative. Anything that is not
// a non-negative finite number is treated as absent.

// FlexString accepts a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// OptInt is an integer that remembers whether the server sent it.
type OptInt struct {
	Value int64
	Valid bool
}

func Int(v int64) OptInt { return OptInt{Value: v, Valid: true} }

func (o *OptInt) UnmarshalJSON(b []byte) error {
	v, ok := parseAmount(b)
	*o = OptInt{Value: v, Valid: ok}
	return nil
}

func (o OptInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, o.Value, 10), nil
}

// Or returns the value when present, def otherwise.
func (o OptInt) Or(def int64) int64 {
	if o.Valid {
		return o.Value
	}
	return def
}

// Positive reports whether the value is present and greater than zero.
func (o OptInt) Positive() bool { return o.Valid && o.Value > 0 }

func (m *Money) UnmarshalJSON(b []byte) error {
	v, _ := parseAmount(b)
	*m = Money(v)
	return nil
}

func parseAmount(b []byte) (int64, bool) {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return 0, false
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt64/2 {
		return 0, false
	}
	return int64(math.Round(f)), true
}
