package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UserID is a backend user identifier. Ids exceed the range a float64 can
// hold exactly, so the decimal digits are kept verbatim. The backend may send
// them either as a JSON number or as a quoted string.
type UserID string

// UnmarshalJSON accepts 123, "123" and null.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flex unmarshal user id: %w", err)
		}
		data = []byte(strings.TrimSpace(s))
	}
	parsed, err := ParseUserID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON writes the id as a bare JSON number, which is what the write
// endpoints expect.
func (id UserID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

func (id UserID) String() string { return string(id) }

// ParseUserID validates a decimal user id.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return "", fmt.Errorf("empty user id")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid user id %q", s)
		}
	}
	return UserID(s), nil
}

// Timestamp decodes the backend's ISO-8601 timestamps. Values without a zone
// designator are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flex unmarshal timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("flex unmarshal timestamp: unrecognised format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
