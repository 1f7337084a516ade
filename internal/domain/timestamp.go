package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"mancarijo/pkg/logger"
)

// Timestamp is an ISO date as stored by the remote API. Empty, null and
// unparseable values decode to the zero time so one bad record never fails
// a whole collection.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	t.Time = time.Time{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Log.Warn("Ignoring non-string date", "value", string(data))
		return nil
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	logger.Log.Warn("Ignoring unparseable date", "value", s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}
