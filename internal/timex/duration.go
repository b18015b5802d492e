// Package timex holds time helpers shared by config loaders and storage
// managers.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration that unmarshals from JSON either as a string
// understood by time.ParseDuration ("3s", "1m30s") or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// ISOMillis is the layout used for persisted timestamps: UTC, millisecond
// precision, trailing "Z".
const ISOMillis = "2006-01-02T15:04:05.000Z"

// FormatISO renders t in ISOMillis after converting it to UTC.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}

// ParseISO parses a timestamp written by FormatISO. RFC 3339 values with
// other precisions are accepted as well.
func ParseISO(s string) (time.Time, error) {
	if t, err := time.Parse(ISOMillis, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
