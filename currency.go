package currency

import "context"

type (
	Fetcher interface {
		Fetch(ctx context.Context, endpoints []Endpoint) []Outcome
	}

	Output interface {
		Show(ok bool, days []FilteredDay) error
	}
)
