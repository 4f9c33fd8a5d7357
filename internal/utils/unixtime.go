package utils

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateLayouts are the human date representations accepted at the API
// boundary, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToUnixTimestamp converts a date value to unix seconds. Numbers are
// assumed to already be unix seconds and pass through unchanged. Strings
// are parsed against the accepted layouts in UTC. The second return is
// false for nil, empty or unparseable input.
func ToUnixTimestamp(value any) (int64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		if v == "" {
			return 0, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
				return t.Unix(), true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// Timestamp is an int64 unix-seconds value that also accepts a date
// string when decoded from JSON, so API clients may send either
// 1729200231 or "2024-10-17".
type Timestamp int64

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = 0
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*t = Timestamp(int64(num))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	unix, ok := ToUnixTimestamp(s)
	if !ok {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	*t = Timestamp(unix)
	return nil
}

func (t Timestamp) Int64() int64 { return int64(t) }

// Int64Ptr is nil safe, so optional payload fields convert directly to
// nullable columns.
func (t *Timestamp) Int64Ptr() *int64 {
	if t == nil {
		return nil
	}
	v := int64(*t)
	return &v
}
