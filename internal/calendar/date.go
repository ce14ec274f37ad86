// AngelaMos | 2026
// date.go

// Package calendar works with plain calendar dates (no time of day, no
// timezone). All arithmetic happens on UTC midnights so daylight saving
// transitions never shift a day count.
package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid calendar date")

var strictPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a local calendar date. The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// IsStrict reports whether s is exactly YYYY-MM-DD.
func IsStrict(s string) bool {
	return strictPattern.MatchString(s)
}

// Parse splits s on '-' and reads year, month and day as calendar fields.
// The year must have four digits, month and day one or two.
func Parse(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
	}

	if len(parts[0]) != 4 ||
		len(parts[1]) < 1 || len(parts[1]) > 2 ||
		len(parts[2]) < 1 || len(parts[2]) > 2 {
		return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
	}

	fields := make([]int, 3)
	for i, p := range parts {
		if !allDigits(p) {
			return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
		}
		fields[i] = n
	}

	d := Date{Year: fields[0], Month: time.Month(fields[1]), Day: fields[2]}
	if !d.Valid() {
		return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
	}

	return d, nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

// FromTime takes the calendar fields of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc != nil {
		now = now.In(loc)
	}
	return FromTime(now)
}

func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Midnight is d at 00:00 UTC.
func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return FromTime(d.Midnight().AddDate(0, 0, n))
}

// AddMonths moves the month field by n and clamps the day to the last
// valid day of the resulting month (Jan 31 + 1 month = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	year, month := first.Year(), first.Month()

	day := d.Day
	if last := DaysInMonth(year, month); day > last {
		day = last
	}

	return Date{Year: year, Month: month, Day: day}
}

func (d Date) Before(o Date) bool {
	return d.Midnight().Before(o.Midnight())
}

func (d Date) After(o Date) bool {
	return d.Midnight().After(o.Midnight())
}

func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

// DaysBetween is floor((to - from) / 1 day).
func DaysBetween(from, to Date) int {
	return int(to.Midnight().Sub(from.Midnight()) / (24 * time.Hour))
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func AddDays(s string, n int) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return d.AddDays(n).String(), nil
}

func AddMonths(s string, n int) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return d.AddMonths(n).String(), nil
}

// DayDiff is the signed number of days from today to target.
// Positive means target is in the future.
func DayDiff(target string, today Date) (int, error) {
	d, err := Parse(target)
	if err != nil {
		return 0, err
	}
	return DaysBetween(today, d), nil
}

// DurationMonths counts whole calendar months between the year/month
// fields of start and expire, with a floor of 1. An inverted or
// unparseable range also yields 1.
func DurationMonths(start, expire string) int {
	s, err := Parse(start)
	if err != nil {
		return 1
	}

	e, err := Parse(expire)
	if err != nil {
		return 1
	}

	return MonthsBetween(s, e)
}

func MonthsBetween(start, expire Date) int {
	if expire.Before(start) {
		return 1
	}

	diff := (expire.Year-start.Year)*12 + int(expire.Month-start.Month)
	if diff < 1 {
		return 1
	}
	return diff
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = FromTime(v)
		return nil
	case string:
		parsed, err := Parse(dateOnly(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(dateOnly(string(v)))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("scan %T into calendar.Date: %w", src, ErrInvalidDate)
	}
}

func dateOnly(s string) string {
	if len(s) > len(Layout) {
		return s[:len(Layout)]
	}
	return s
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("value %s: %w", d, ErrInvalidDate)
	}
	return d.String(), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshal date: %w", err)
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}
