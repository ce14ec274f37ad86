// AngelaMos | 2026
// sales_test.go

package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
)

func datePtr(y int, m time.Month, d int) *calendar.Date {
	date := calendar.New(y, m, d)
	return &date
}

func TestClampUnitPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"", 150000},
		{"abc", 150000},
		{"NaN", 150000},
		{"200000", 200000},
		{"5000", 10000},
		{"900000", 500000},
		{" 120000 ", 120000},
		{"99999.9", 99999},
		{"-1", 10000},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampUnitPrice(tt.raw, DefaultPriceBounds))
		})
	}
}

func TestNormalizeMonth(t *testing.T) {
	today := calendar.New(2024, time.March, 15)

	assert.Equal(t, "2024-01", NormalizeMonth("2024-01", today).Key())
	assert.Equal(t, "2024-03", NormalizeMonth("", today).Key())
	assert.Equal(t, "2024-03", NormalizeMonth("2024-13", today).Key())
	assert.Equal(t, "2024-03", NormalizeMonth("2024-1", today).Key())
	assert.Equal(t, "2024-03", NormalizeMonth("January", today).Key())
	assert.Equal(t, "2024년 1월", NormalizeMonth("2024-01", today).Label())
}

func TestAggregateEstimatesByStartMonth(t *testing.T) {
	rows := []RevenueRow{
		{StartDate: datePtr(2024, time.January, 1), ExpireDate: datePtr(2024, time.April, 1)},
	}
	today := calendar.New(2024, time.January, 20)

	sales := Aggregate(rows, calendar.YearMonth{Year: 2024, Month: time.January}, today, 200000, time.UTC)

	require.Len(t, sales.Daily, 31)
	assert.Equal(t, "2024-01-01", sales.Daily[0].Date)
	assert.Equal(t, int64(600000), sales.Daily[0].EstimatedSales)
	assert.Equal(t, 1, sales.Daily[0].MemberCount)
	assert.Equal(t, int64(600000), sales.Selected)
	assert.Equal(t, Bucket{EstimatedSales: 600000, MemberCount: 1}, sales.Monthly["2024-01"])
	assert.Equal(t, int64(600000), sales.Current)
	assert.Equal(t, int64(0), sales.Previous)
}

func TestAggregateOtherMonthOnlyHitsMonthly(t *testing.T) {
	rows := []RevenueRow{
		{StartDate: datePtr(2024, time.January, 10), ExpireDate: datePtr(2024, time.February, 10)},
		{StartDate: datePtr(2024, time.February, 29), ExpireDate: datePtr(2024, time.August, 31)},
	}
	today := calendar.New(2024, time.February, 5)

	sales := Aggregate(rows, calendar.YearMonth{Year: 2024, Month: time.February}, today, 100000, time.UTC)

	require.Len(t, sales.Daily, 29)
	assert.Equal(t, int64(600000), sales.Daily[28].EstimatedSales)
	assert.Equal(t, int64(600000), sales.Selected)
	assert.Equal(t, int64(600000), sales.Current)
	assert.Equal(t, int64(100000), sales.Previous)
}

func TestAggregateFallsBackToCreationDay(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	rows := []RevenueRow{
		{
			ExpireDate: datePtr(2024, time.March, 1),
			CreatedAt:  time.Date(2024, time.January, 31, 20, 0, 0, 0, time.UTC),
		},
		{
			ExpireDate: nil,
			CreatedAt:  time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC),
		},
	}
	today := calendar.New(2024, time.February, 10)

	sales := Aggregate(rows, calendar.YearMonth{Year: 2024, Month: time.February}, today, 150000, seoul)

	assert.Equal(t, 1, sales.Daily[0].MemberCount, "created on Feb 1 in Seoul")
	assert.Equal(t, int64(150000), sales.Daily[0].EstimatedSales)
	assert.Equal(t, int64(150000), sales.Selected)
	assert.Len(t, sales.Monthly, 1)
}

func TestAggregateInvertedRangeCountsOneMonth(t *testing.T) {
	rows := []RevenueRow{
		{StartDate: datePtr(2024, time.March, 15), ExpireDate: datePtr(2024, time.January, 15)},
	}
	today := calendar.New(2024, time.March, 20)

	sales := Aggregate(rows, today.YearMonth(), today, 150000, time.UTC)

	assert.Equal(t, int64(150000), sales.Daily[14].EstimatedSales)
	assert.Equal(t, int64(150000), sales.Current)
}
