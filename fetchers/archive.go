package fetchers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	currency "github.com/malusev998/currency-archive"
	"github.com/malusev998/currency-archive/metrics"
)

// ArchiveFetcher retrieves one PrivatBank archive day per endpoint.
// A failed day never cancels or fails its siblings.
type ArchiveFetcher struct {
	// Client is shared by all tasks when set; otherwise every task gets its own
	// client and connection pool, released when the task ends.
	Client *http.Client
	// Timeout is a per-request deadline, zero disables it.
	Timeout time.Duration
	Storage currency.Storage
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func (a ArchiveFetcher) Fetch(ctx context.Context, endpoints []currency.Endpoint) []currency.Outcome {
	var g errgroup.Group
	var appendWg sync.WaitGroup

	if ctx == nil {
		ctx = context.Background()
	}

	outcomes := make([]currency.Outcome, len(endpoints))
	channel := make(outcomeChannel, len(endpoints))

	appendWg.Add(1)
	go collectOutcomes(&appendWg, channel, outcomes)

	for i, endpoint := range endpoints {
		g.Go(func() error {
			channel <- indexedOutcome{idx: i, outcome: a.fetchDay(ctx, endpoint)}
			return nil
		})
	}

	_ = g.Wait()
	close(channel)
	appendWg.Wait()

	return outcomes
}

func (a ArchiveFetcher) fetchDay(ctx context.Context, endpoint currency.Endpoint) currency.Outcome {
	start := time.Now()
	outcome := a.retrieve(ctx, endpoint)
	a.Metrics.ObserveFetch(outcome.Kind, time.Since(start))

	return outcome
}

func (a ArchiveFetcher) retrieve(ctx context.Context, endpoint currency.Endpoint) currency.Outcome {
	logger := a.logger().With("url", endpoint.URL)

	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	req, err := newRequest(ctx, endpoint.URL)

	if err != nil {
		return a.drop(logger, endpoint, err)
	}

	client, owned := a.client()

	if owned {
		defer client.CloseIdleConnections()
	}

	res, err := client.Do(req)

	if err != nil {
		return a.drop(logger, endpoint, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		logger.Warn("fetch failed", "status", res.StatusCode)
		return currency.Status(endpoint, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return a.drop(logger, endpoint, err)
	}

	receivedAt := time.Now()
	record, err := decodeDay(body)

	if err != nil {
		return a.drop(logger, endpoint, err)
	}

	logger.Info("fetch succeeded", "date", record.Date, "rates", len(record.ExchangeRate))
	a.audit(ctx, logger, currency.AuditEntry{
		URL:        endpoint.URL,
		Date:       record.Date,
		Payload:    body,
		ReceivedAt: receivedAt,
	})

	return currency.Payload(endpoint, record)
}

func (a ArchiveFetcher) drop(logger *slog.Logger, endpoint currency.Endpoint, err error) currency.Outcome {
	logger.Warn("fetch failed", "error", err)

	return currency.Dropped(endpoint, err)
}

func (a ArchiveFetcher) audit(ctx context.Context, logger *slog.Logger, entry currency.AuditEntry) {
	if a.Storage == nil {
		return
	}

	if _, err := a.Storage.Append(context.WithoutCancel(ctx), entry); err != nil {
		a.Metrics.AuditFailed()
		logger.Warn("audit append failed", "storage", a.Storage.GetStorageProviderName(), "error", err)
	}
}

func (a ArchiveFetcher) client() (*http.Client, bool) {
	if a.Client != nil {
		return a.Client, false
	}

	transport, ok := http.DefaultTransport.(*http.Transport)

	if !ok {
		return &http.Client{Transport: &http.Transport{}}, true
	}

	return &http.Client{Transport: transport.Clone()}, true
}

func (a ArchiveFetcher) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}

	return slog.Default()
}

func decodeDay(body []byte) (*currency.DayRecord, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) == 0 {
		return nil, ErrEmptyBody
	}

	var record currency.DayRecord

	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &record, nil
}
