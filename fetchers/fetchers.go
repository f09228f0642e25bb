package fetchers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	currency "github.com/malusev998/currency-archive"
)

var (
	ErrMalformedPayload = errors.New("archive returned a malformed payload")
	ErrEmptyBody        = errors.New("archive returned an empty body")
)

type (
	indexedOutcome struct {
		idx     int
		outcome currency.Outcome
	}

	outcomeChannel chan indexedOutcome
)

func newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")

	return req, nil
}

// collectOutcomes places every outcome at the index of its endpoint,
// so the result follows request order whatever the completion order was.
func collectOutcomes(wg *sync.WaitGroup, c outcomeChannel, outcomes []currency.Outcome) {
	defer wg.Done()

	for data := range c {
		outcomes[data.idx] = data.outcome
	}
}
