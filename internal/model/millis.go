package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Millis is a timestamp in epoch milliseconds. It encodes as a JSON number
// and decodes from either a number or a date string, since seed data and
// some backends hand out ISO-8601 strings.
//
// Zero means unset, so the Unix epoch itself cannot be stored as a date.
type Millis int64

var millisLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// MillisOf converts t to epoch milliseconds.
func MillisOf(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Now returns the current time in epoch milliseconds.
func Now() Millis {
	return MillisOf(time.Now())
}

// ParseMillis parses a date or date-time string.
func ParseMillis(s string) (Millis, error) {
	for _, layout := range millisLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return MillisOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", s)
}

// Ptr returns a pointer to a copy of m.
func (m Millis) Ptr() *Millis {
	return &m
}

// IsZero reports whether m is unset. An epoch-0 timestamp counts as unset.
func (m Millis) IsZero() bool {
	return m == 0
}

// Time converts m back to a time.Time in UTC.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Millis.
func (m *Millis) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("failed to decode timestamp: %w", err)
		}
		if s == "" {
			*m = 0
			return nil
		}
		parsed, err := ParseMillis(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}

	if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*m = Millis(n)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s", b)
	}
	*m = Millis(int64(f))
	return nil
}
