package fetchers

import (
	"log/slog"
	"net/http"
	"time"

	currency "github.com/malusev998/currency-archive"
	"github.com/malusev998/currency-archive/metrics"
)

type (
	BaseConfig struct {
		Logger  *slog.Logger
		Metrics *metrics.Metrics
	}

	ArchiveConfig struct {
		BaseConfig
		Client  *http.Client
		Timeout time.Duration
		Storage currency.Storage
	}
)

func NewArchiveFetcher(config ArchiveConfig) ArchiveFetcher {
	return ArchiveFetcher{
		Client:  config.Client,
		Timeout: config.Timeout,
		Storage: config.Storage,
		Logger:  config.Logger,
		Metrics: config.Metrics,
	}
}
