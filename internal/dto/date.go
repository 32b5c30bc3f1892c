package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date accepts RFC 3339 timestamps or plain YYYY-MM-DD dates. An empty string
// decodes to a cleared date.
type Date struct {
	Time  time.Time
	Valid bool
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("data inválida: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date{Time: t, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("data inválida: %q", s)
}

// Ptr returns nil for a cleared date.
func (d Date) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
