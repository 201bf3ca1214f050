package models

import (
	"encoding/json"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DateError reports a date or timestamp field that could not be parsed.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return "invalid date " + e.Value + ": use YYYY-MM-DD or an RFC3339 timestamp"
}

// Date is a calendar day without time of day. It accepts either "2006-01-02"
// or a full RFC3339 timestamp on input and always writes the short form.
type Date struct{ time.Time }

func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := parseDateOrTime(s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// DateFromTime truncates a scanned timestamp to its calendar day.
func DateFromTime(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(t.Year(), t.Month(), t.Day())
	return &d
}

// TimePtr is the inverse of DateFromTime, for binding query args.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := jsonDateString(b)
	if err != nil {
		return err
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Timestamp is a patchable instant. A bare "2006-01-02" is read as midnight
// UTC of that day.
type Timestamp struct{ time.Time }

func (ts *Timestamp) TimePtr() *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time)
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s, err := jsonDateString(b)
	if err != nil {
		return err
	}
	t, err := parseDateOrTime(s)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

func parseDateOrTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &DateError{Value: `"` + s + `"`}
	}
	return t, nil
}

func jsonDateString(b []byte) (string, error) {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return "", &DateError{Value: string(b)}
	}
	return s, nil
}
