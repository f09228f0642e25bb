package services

import (
	"errors"
	"fmt"

	currency "github.com/malusev998/currency-archive"
)

var (
	ErrEmptyAnswer  = errors.New("archive answer is empty")
	ErrEmptyFilter  = errors.New("currency filter is empty")
	ErrNoPayload    = errors.New("archive did not return a payload")
	ErrMalformedDay = errors.New("archive returned a malformed day record")
)

// Aggregate validates every outcome and reduces each day record to the
// currencies in filter. A single outcome without a well formed payload
// fails the whole answer and no partial result is returned.
func Aggregate(outcomes []currency.Outcome, filter []string) ([]currency.FilteredDay, error) {
	if len(outcomes) == 0 {
		return nil, ErrEmptyAnswer
	}

	if len(filter) == 0 {
		return nil, ErrEmptyFilter
	}

	for i, outcome := range outcomes {
		if err := validate(outcome); err != nil {
			return nil, fmt.Errorf("day %d (%s): %w", i, outcome.Endpoint.URL, err)
		}
	}

	result := make([]currency.FilteredDay, 0, len(outcomes))

	for _, outcome := range outcomes {
		result = append(result, filterDay(outcome.Record, filter))
	}

	return result, nil
}

func validate(outcome currency.Outcome) error {
	switch outcome.Kind {
	case currency.OutcomePayload:
		if !outcome.Record.Valid() {
			return ErrMalformedDay
		}

		return nil
	case currency.OutcomeStatusCode:
		return fmt.Errorf("%w: status %d", ErrNoPayload, outcome.StatusCode)
	default:
		if outcome.Err != nil {
			return fmt.Errorf("%w: %v", ErrNoPayload, outcome.Err)
		}

		return ErrNoPayload
	}
}

func filterDay(record *currency.DayRecord, filter []string) currency.FilteredDay {
	day := currency.FilteredDay{
		Date:  record.Date,
		Rates: make([]currency.CurrencyRate, 0, len(filter)),
	}

	for _, code := range filter {
		for _, rate := range record.ExchangeRate {
			if rate.Currency != code {
				continue
			}

			day.Rates = append(day.Rates, currency.CurrencyRate{
				Currency: code,
				Sale:     rate.SaleRate,
				Purchase: rate.PurchaseRate,
			})

			break
		}
	}

	return day
}
