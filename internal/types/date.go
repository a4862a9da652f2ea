package types

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the canonical calendar-date format used in position files.
const DateLayout = "2006-01-02"

// dateLayouts are the accepted input formats, tried in order.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Date is a calendar date attached to a closed position. It wraps time.Time
// so position files can carry plain dates while the rest of the code keeps
// full time.Time semantics for sorting and bucketing.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date string using the accepted layouts.
func ParseDate(value string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Date{Time: t}, nil
		}
	}

	return Date{}, fmt.Errorf("unrecognized date format: %q", value)
}

// MonthEnd returns the last day of the date's calendar month. Monthly P/L
// buckets are keyed by month end, matching the resample convention the
// report has always used.
func (d Date) MonthEnd() Date {
	firstOfNext := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	return Date{Time: firstOfNext.AddDate(0, 0, -1)}
}

// String returns the date in canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// UnmarshalCSV implements the gocsv unmarshaler.
func (d *Date) UnmarshalCSV(value string) error {
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// MarshalCSV implements the gocsv marshaler.
func (d Date) MarshalCSV() (string, error) {
	return d.Format(DateLayout), nil
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(DateLayout))), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD (or RFC3339) string.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := string(data)
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// MarshalYAML encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format(DateLayout), nil
}

// UnmarshalYAML decodes a YYYY-MM-DD (or RFC3339) string.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
