package planner

import (
	"strconv"
	"strings"
	"time"

	currency "github.com/malusev998/currency-archive"
)

const (
	// DayLimit is exclusive: a window is always in [1, DayLimit).
	DayLimit   = 10
	DateFormat = "02.01.2006"
	ArchiveURL = "https://api.privatbank.ua/p24api/exchange_rates?json&date="
)

var DefaultCurrencies = []string{"EUR", "USD"}

type Planner struct {
	URL               string
	DefaultCurrencies []string
	Now               func() time.Time
}

func (p Planner) Plan(rawDays string, rawCurrencies []string) currency.Plan {
	url := p.URL

	if url == "" {
		url = ArchiveURL
	}

	window := Window(rawDays)

	return currency.Plan{
		Window:     window,
		Endpoints:  Endpoints(p.now(), url, window),
		Currencies: Filter(rawCurrencies, p.DefaultCurrencies),
	}
}

func (p Planner) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}

	return p.Now()
}

// Window parses the look-back count. Anything that is not an integer
// yields 1, values below 1 are raised to 1 and values at or above
// DayLimit are lowered to DayLimit-1.
func Window(rawDays string) int {
	days, err := strconv.Atoi(strings.TrimSpace(rawDays))

	if err != nil || days < 1 {
		return 1
	}

	if days >= DayLimit {
		return DayLimit - 1
	}

	return days
}

// Endpoints returns one endpoint per day, today first.
func Endpoints(now time.Time, baseURL string, window int) []currency.Endpoint {
	endpoints := make([]currency.Endpoint, 0, window)

	for step := 0; step < window; step++ {
		date := now.AddDate(0, 0, -step)

		endpoints = append(endpoints, currency.Endpoint{
			Date: date,
			URL:  baseURL + date.Format(DateFormat),
		})
	}

	return endpoints
}

func Filter(rawCurrencies, defaults []string) []string {
	currencies := make([]string, 0, len(rawCurrencies))
	seen := make(map[string]struct{}, len(rawCurrencies))

	for _, c := range rawCurrencies {
		c = strings.TrimSpace(c)

		if c == "" {
			continue
		}

		if _, exists := seen[c]; exists {
			continue
		}

		seen[c] = struct{}{}
		currencies = append(currencies, c)
	}

	if len(currencies) != 0 {
		return currencies
	}

	if len(defaults) == 0 {
		defaults = DefaultCurrencies
	}

	return append([]string(nil), defaults...)
}
