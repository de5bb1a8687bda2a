package message

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	timestampLayout           = "2006-01-02T15:04:05"
	timestampLayoutFractional = "2006-01-02T15:04:05.000000"
	timestampLayoutNaive      = "2006-01-02T15:04:05.999999999"
)

// Timestamp is the point in time an Event has been created at.
//
// On the wire it is represented as an ISO-8601 wall-clock time without offset,
// with microseconds only when the sub-second part is not zero,
// e.g. "2014-02-01T08:09:10" or "2014-02-01T08:09:10.250000".
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps the provided time into a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses an ISO-8601 timestamp, either in the naive form
// produced by Timestamp.String, or in RFC 3339 form with an explicit offset.
//
// Naive timestamps carry no zone: they are kept as UTC wall-clock values,
// so that String returns them unchanged.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewTimestamp(t), nil
	}

	t, err := time.ParseInLocation(timestampLayoutNaive, s, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("message.ParseTimestamp: invalid timestamp '%s', %w", s, err)
	}

	return NewTimestamp(t), nil
}

// String returns the ISO-8601 representation used on the wire.
func (ts Timestamp) String() string {
	if ts.Nanosecond()/int(time.Microsecond) == 0 {
		return ts.Format(timestampLayout)
	}

	return ts.Format(timestampLayoutFractional)
}

// MarshalJSON implements the json.Marshaler interface.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("message.Timestamp: expected a string, %w", err)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}

	*ts = parsed

	return nil
}
