package main

import (
	"context"
	"fmt"
	"log/slog"

	currency "github.com/malusev998/currency-archive"
	"github.com/malusev998/currency-archive/cli/cmd"
	"github.com/malusev998/currency-archive/fetchers"
	"github.com/malusev998/currency-archive/metrics"
	"github.com/malusev998/currency-archive/planner"
	"github.com/malusev998/currency-archive/services"
	"github.com/malusev998/currency-archive/storage"
)

func createStorage(config *Config) (currency.Storage, error) {
	if config.Storage == storage.None {
		return nil, nil
	}

	c, ok := config.StorageConfig[config.Storage]

	if !ok {
		return nil, fmt.Errorf("storage %s does not exist", config.Storage)
	}

	return storage.NewStorage(config.Storage, c)
}

func build(ctx context.Context, logger *slog.Logger) (*cmd.Config, error) {
	config, err := getConfig(ctx)

	if err != nil {
		return nil, err
	}

	st, err := createStorage(config)

	if err != nil {
		return nil, fmt.Errorf("error while creating %s audit storage: %w", config.Storage, err)
	}

	m := metrics.NewMetrics()

	fetcher := fetchers.NewArchiveFetcher(fetchers.ArchiveConfig{
		BaseConfig: fetchers.BaseConfig{
			Logger:  logger,
			Metrics: m,
		},
		Timeout: config.Timeout,
		Storage: st,
	})

	logger.Debug("configuration loaded",
		"archive", config.ArchiveURL,
		"timeout", config.Timeout,
		"storage", config.Storage,
		"currencies", config.Currencies,
	)

	return &cmd.Config{
		Ctx: ctx,
		Planner: planner.Planner{
			URL:               config.ArchiveURL,
			DefaultCurrencies: config.Currencies,
		},
		Service: services.Service{
			Fetcher: fetcher,
			Logger:  logger,
			Metrics: m,
		},
		Logger:      logger,
		Metrics:     m,
		MetricsFile: config.MetricsFile,
		Format:      config.Format,
		Close: func() error {
			if st == nil {
				return nil
			}

			return st.Close()
		},
	}, nil
}
