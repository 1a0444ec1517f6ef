package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayouts are the timestamp shapes the backend emits. Values carry no
// zone and are interpreted as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// NaiveTime is a backend timestamp without time zone.
type NaiveTime struct {
	time.Time
}

// ParseNaiveTime accepts any of the backend timestamp layouts.
func ParseNaiveTime(s string) (NaiveTime, error) {
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NaiveTime{t.UTC()}, nil
		}
	}
	return NaiveTime{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t NaiveTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format("2006-01-02T15:04:05"))
}

func (t *NaiveTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = NaiveTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseNaiveTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date formats the value as dd/MM/yyyy.
func (t NaiveTime) Date() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// DateTime formats the value as dd/MM/yyyy HH:mm:ss.
func (t NaiveTime) DateTime() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04:05")
}
