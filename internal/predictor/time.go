package predictor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// Time is an API timestamp. The API emits naive timestamps in UTC.
type Time struct {
	time.Time
}

// UnmarshalJSON decodes naive and zoned timestamps, treating naive as UTC.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	parsed, err := ParseTime(raw)
	if err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	*t = parsed
	return nil
}

// ParseTime parses a timestamp in any layout the API emits. Naive values are
// read as UTC and an empty string yields the zero Time.
func ParseTime(raw string) (Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Time{}, nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return Time{Time: parsed.UTC()}, nil
		}
	}
	return Time{}, fmt.Errorf("unsupported format %q", raw)
}

// MarshalJSON encodes the timestamp in the naive UTC form the API uses.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format("2006-01-02T15:04:05"))
}
