// AngelaMos | 2026
// sales.go

package dashboard

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
)

// PriceBounds configures the per-month unit price used for estimates.
type PriceBounds struct {
	Default int64
	Min     int64
	Max     int64
}

var DefaultPriceBounds = PriceBounds{
	Default: 150000,
	Min:     10000,
	Max:     500000,
}

// ClampUnitPrice reads a unit price query value. Blank or non-numeric
// input falls back to the default; the result is clamped to [Min, Max].
func ClampUnitPrice(raw string, bounds PriceBounds) int64 {
	price := float64(bounds.Default)

	if raw = strings.TrimSpace(raw); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			price = v
		}
	}

	price = math.Max(float64(bounds.Min), math.Min(float64(bounds.Max), price))
	return int64(price)
}

// NormalizeMonth parses a YYYY-MM selection, falling back to the month
// containing today.
func NormalizeMonth(raw string, today calendar.Date) calendar.YearMonth {
	if ym, err := calendar.ParseYearMonth(strings.TrimSpace(raw)); err == nil {
		return ym
	}
	return today.YearMonth()
}

// RevenueRow is the projection of a live member the estimate needs.
type RevenueRow struct {
	StartDate  *calendar.Date `db:"start_date"`
	ExpireDate *calendar.Date `db:"expire_date"`
	CreatedAt  time.Time      `db:"created_at"`
}

type DailyPoint struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	EstimatedSales int64  `json:"estimated_sales"`
	MemberCount    int    `json:"member_count"`
}

type Bucket struct {
	EstimatedSales int64 `json:"estimated_sales"`
	MemberCount    int   `json:"member_count"`
}

type Sales struct {
	Daily    []DailyPoint
	Monthly  map[string]Bucket
	Selected int64
	Current  int64
	Previous int64
}

// Aggregate estimates sales as membership length in months times the
// unit price, attributed to the month (and for the selected month, the
// day) the membership started. Current and previous are relative to
// today, not to the selected month.
func Aggregate(
	rows []RevenueRow,
	selected calendar.YearMonth,
	today calendar.Date,
	unitPrice int64,
	loc *time.Location,
) Sales {
	daily := dailySeries(selected)
	monthly := make(map[string]Bucket)

	for _, row := range rows {
		if row.ExpireDate == nil {
			continue
		}

		start := effectiveStart(row, loc)
		estimated := int64(calendar.MonthsBetween(start, *row.ExpireDate)) * unitPrice

		key := start.YearMonth().Key()
		bucket := monthly[key]
		bucket.EstimatedSales += estimated
		bucket.MemberCount++
		monthly[key] = bucket

		if start.YearMonth() != selected {
			continue
		}

		point := &daily[start.Day-1]
		point.EstimatedSales += estimated
		point.MemberCount++
	}

	var selectedTotal int64
	for _, p := range daily {
		selectedTotal += p.EstimatedSales
	}

	current := today.YearMonth()

	return Sales{
		Daily:    daily,
		Monthly:  monthly,
		Selected: selectedTotal,
		Current:  monthly[current.Key()].EstimatedSales,
		Previous: monthly[current.Shift(-1).Key()].EstimatedSales,
	}
}

func effectiveStart(row RevenueRow, loc *time.Location) calendar.Date {
	if row.StartDate != nil {
		return *row.StartDate
	}
	return calendar.Today(row.CreatedAt, loc)
}

func dailySeries(ym calendar.YearMonth) []DailyPoint {
	days := ym.Days()
	points := make([]DailyPoint, days)
	for i := range points {
		day := i + 1
		points[i] = DailyPoint{
			Date: calendar.New(ym.Year, ym.Month, day).String(),
			Day:  day,
		}
	}
	return points
}
