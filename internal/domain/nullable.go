package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var nullLiteral = []byte("null")

// acceptedTimeLayouts are tried in order when decoding a NullableTime.
// Browsers submit date and datetime-local inputs without a zone.
var acceptedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NullableTime is an optional timestamp in a request body. It accepts null,
// an empty string, RFC 3339 and the plain date/datetime layouts of HTML forms.
type NullableTime struct {
	Time  time.Time
	Valid bool
}

// NewNullableTime returns a valid NullableTime
func NewNullableTime(t time.Time) NullableTime {
	return NullableTime{Time: t, Valid: true}
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullLiteral) {
		*n = NullableTime{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	parsed, err := ParseNullableTime(raw)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// ParseNullableTime parses a form or JSON string value. Blank is absent.
func ParseNullableTime(raw string) (NullableTime, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NullableTime{}, nil
	}
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return NewNullableTime(t), nil
		}
	}
	return NullableTime{}, fmt.Errorf("invalid date %q", raw)
}

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return nullLiteral, nil
	}
	return json.Marshal(n.Time)
}

// OrNow returns the time, or now when absent
func (n NullableTime) OrNow(now func() time.Time) time.Time {
	if n.Valid {
		return n.Time
	}
	return now()
}

// NullableInt64 is an optional integer id in a request body. Form-driven
// clients send ids as strings, so numeric strings are accepted too.
type NullableInt64 struct {
	Int64 int64
	Valid bool
}

// NewNullableInt64 returns a valid NullableInt64
func NewNullableInt64(v int64) NullableInt64 {
	return NullableInt64{Int64: v, Valid: true}
}

func (n *NullableInt64) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullLiteral) {
		*n = NullableInt64{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := ParseNullableInt64(raw)
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*n = NewNullableInt64(v)
	return nil
}

// ParseNullableInt64 parses a form or JSON string id. Blank is absent.
func ParseNullableInt64(raw string) (NullableInt64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NullableInt64{}, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return NullableInt64{}, fmt.Errorf("invalid id %q", raw)
	}
	return NewNullableInt64(v), nil
}

func (n NullableInt64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return nullLiteral, nil
	}
	return json.Marshal(n.Int64)
}

// Ptr returns the value as a pointer, nil when absent
func (n NullableInt64) Ptr() *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
