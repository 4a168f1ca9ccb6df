package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// timestampLayouts are the formats the backend has been seen to emit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a backend time that never fails decoding. Values in an
// unknown format, numbers and null all decode to the zero time.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s with the known layouts. ok is false when none
// matched.
func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	return Timestamp{}, false
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil //nolint:nilerr
	}
	*ts, _ = ParseTimestamp(s)
	return nil
}
