package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without a time component. It marshals to and from
// JSON as "YYYY-MM-DD" and is stored in a date column.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, m, d)
}

// ParseDate accepts "YYYY-MM-DD" or a full RFC3339 timestamp, keeping only
// the date part.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return NewDate(y, m, d), nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner. Drivers hand back time.Time for date columns;
// string and []byte are handled for engines that store dates as text.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		y, m, day := v.Date()
		*d = NewDate(y, m, day)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}
	return fmt.Errorf("cannot scan %T into Date", value)
}

func (d *Date) scanString(s string) error {
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse("2006-01-02 15:04:05.999999999-07:00", s)
	if err != nil {
		return fmt.Errorf("cannot scan %q into Date", s)
	}
	y, m, day := t.Date()
	*d = NewDate(y, m, day)
	return nil
}

// GormDataType tells GORM to use a date column.
func (Date) GormDataType() string {
	return "date"
}
