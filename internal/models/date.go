package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. It marshals to and
// from "YYYY-MM-DD" in JSON.
type Date struct {
	time.Time
}

// ParseDate parses a "YYYY-MM-DD" string into a Date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MarshalJSON formats the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON parses a "YYYY-MM-DD" JSON string
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date: %s", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// After reports whether d is strictly after other, comparing dates only
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}
