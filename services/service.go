package services

import (
	"context"
	"log/slog"
	"time"

	currency "github.com/malusev998/currency-archive"
	"github.com/malusev998/currency-archive/metrics"
)

type Service struct {
	Fetcher currency.Fetcher
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Exchange fetches every endpoint of the plan and aggregates the answer.
// The aggregation only starts after all fetches have settled.
func (s Service) Exchange(ctx context.Context, plan currency.Plan) (bool, []currency.FilteredDay) {
	start := time.Now()
	outcomes := s.Fetcher.Fetch(ctx, plan.Endpoints)
	elapsed := time.Since(start)

	s.Metrics.ObserveExchange(elapsed)
	s.logger().Info("exchange fetched", "days", plan.Window, "endpoints", len(plan.Endpoints), "elapsed", elapsed)

	return s.Aggregate(outcomes, plan.Currencies)
}

func (s Service) Aggregate(outcomes []currency.Outcome, filter []string) (bool, []currency.FilteredDay) {
	days, err := Aggregate(outcomes, filter)

	s.Metrics.ObserveAggregation(err == nil)

	if err != nil {
		s.logger().Warn("aggregation failed", "outcomes", len(outcomes), "currencies", filter, "error", err)
		return false, nil
	}

	s.logger().Info("aggregation done", "days", len(days), "currencies", filter)

	return true, days
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}

	return slog.Default()
}
