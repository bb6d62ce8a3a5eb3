package shared_models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeLayout is the wire format of every timestamp in request and
// response bodies: a local date-time without zone.
const DateTimeLayout = "2006-01-02T15:04:05"

// Location is the zone wire timestamps are interpreted in. Set once at startup.
var Location = time.UTC

// Timestamp is a time.Time that travels as DateTimeLayout. RFC 3339 input is
// accepted as well.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.In(Location).Format(DateTimeLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp parses DateTimeLayout in Location, falling back to RFC 3339.
// The result is in UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	if parsed, err := time.ParseInLocation(DateTimeLayout, raw, Location); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected %s", raw, DateTimeLayout)
	}
	return parsed.UTC(), nil
}
