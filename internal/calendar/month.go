// AngelaMos | 2026
// month.go

package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth reads a strict YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	m := monthPattern.FindStringSubmatch(s)
	if m == nil {
		return YearMonth{}, fmt.Errorf("parse month %q: %w", s, ErrInvalidDate)
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return YearMonth{}, fmt.Errorf("parse month %q: %w", s, ErrInvalidDate)
	}
	month, err := strconv.Atoi(m[2])
	if err != nil || month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("parse month %q: %w", s, ErrInvalidDate)
	}

	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

func (ym YearMonth) Key() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) String() string {
	return ym.Key()
}

// Label is the display form used by the console, e.g. "2024년 1월".
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%d년 %d월", ym.Year, int(ym.Month))
}

func (ym YearMonth) Shift(delta int) YearMonth {
	t := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) Days() int {
	return DaysInMonth(ym.Year, ym.Month)
}

func (ym YearMonth) FirstDay() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: 1}
}

func (ym YearMonth) LastDay() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: ym.Days()}
}
