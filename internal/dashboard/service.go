// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/core"
)

type Response struct {
	Counts
	UnitPrice          int64        `json:"unit_price"`
	SelectedMonth      string       `json:"selected_month"`
	SelectedMonthLabel string       `json:"selected_month_label"`
	DailySales         []DailyPoint `json:"daily_sales"`
	SelectedMonthSales int64        `json:"selected_month_sales"`
	CurrentMonthSales  int64        `json:"current_month_sales"`
	PreviousMonthSales int64        `json:"previous_month_sales"`
}

type Service struct {
	repo   Repository
	cache  *CountsCache
	clock  core.Clock
	bounds PriceBounds
}

func NewService(
	repo Repository,
	cache *CountsCache,
	clock core.Clock,
	bounds PriceBounds,
) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		clock:  clock,
		bounds: bounds,
	}
}

// Get builds the dashboard for the raw month and unit price query values.
func (s *Service) Get(
	ctx context.Context,
	gymID, rawMonth, rawUnitPrice string,
) (*Response, error) {
	loc := s.clock.Location()
	today := calendar.Today(s.clock.Now(), loc)
	selected := NormalizeMonth(rawMonth, today)
	unitPrice := ClampUnitPrice(rawUnitPrice, s.bounds)

	counts, err := s.cache.GetOrLoad(ctx, gymID, today,
		func(ctx context.Context) (Counts, error) {
			return s.repo.Counts(ctx, gymID, today, loc)
		})
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.RevenueRows(ctx, gymID)
	if err != nil {
		return nil, err
	}

	sales := Aggregate(rows, selected, today, unitPrice, loc)

	return &Response{
		Counts:             counts,
		UnitPrice:          unitPrice,
		SelectedMonth:      selected.Key(),
		SelectedMonthLabel: selected.Label(),
		DailySales:         sales.Daily,
		SelectedMonthSales: sales.Selected,
		CurrentMonthSales:  sales.Current,
		PreviousMonthSales: sales.Previous,
	}, nil
}
