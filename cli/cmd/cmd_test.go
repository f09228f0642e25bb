package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-archive"
	"github.com/malusev998/currency-archive/planner"
)

type stubService struct {
	ok    bool
	plans []currency.Plan
}

func (s *stubService) Exchange(_ context.Context, plan currency.Plan) (bool, []currency.FilteredDay) {
	s.plans = append(s.plans, plan)

	if !s.ok {
		return false, nil
	}

	return true, []currency.FilteredDay{{Date: "03.12.2014"}}
}

func stubBuilder(service *stubService, closed *int, archiveURL *string) Builder {
	return func(ctx context.Context, logger *slog.Logger) (*Config, error) {
		*archiveURL = viper.GetString("archive.url")

		return &Config{
			Ctx: ctx,
			Planner: planner.Planner{
				URL: *archiveURL,
				Now: func() time.Time { return time.Date(2014, time.December, 3, 9, 0, 0, 0, time.UTC) },
			},
			Service: service,
			Logger:  logger,
			Format:  "json",
			Close: func() error {
				*closed++
				return nil
			},
		}, nil
	}
}

func TestRootCommand(t *testing.T) {
	asserts := require.New(t)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	asserts.Nil(os.WriteFile(configFile, []byte("archive:\n  url: http://archive.test/rates?date=\n"), 0o644))

	t.Run("ReadsConfigBuildsAndCloses", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		service := &stubService{ok: true}
		closed := 0
		archiveURL := ""
		buf := new(bytes.Buffer)

		rootCmd, config := newRootCmd(context.Background(), stubBuilder(service, &closed, &archiveURL))
		rootCmd.SetOut(buf)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs([]string{"--config", configFile, "exchange", "-2", "USD"})

		asserts.Nil(execute(rootCmd, config))

		asserts.Equal("http://archive.test/rates?date=", archiveURL)
		asserts.Equal(1, closed)
		asserts.Len(service.plans, 1)
		asserts.Equal(1, service.plans[0].Window)
		asserts.Equal([]string{"USD"}, service.plans[0].Currencies)
		asserts.Equal("http://archive.test/rates?date=03.12.2014", service.plans[0].Endpoints[0].URL)
		asserts.Contains(buf.String(), "03.12.2014")
	})

	t.Run("FailedExchangeStillCloses", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		service := &stubService{}
		closed := 0
		archiveURL := ""

		rootCmd, config := newRootCmd(context.Background(), stubBuilder(service, &closed, &archiveURL))
		rootCmd.SetOut(io.Discard)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs([]string{"--config", configFile, "rates", "3", "EUR"})

		err := execute(rootCmd, config)

		asserts.True(errors.Is(err, ErrExchangeFailed))
		asserts.Equal(1, closed)
		asserts.Equal(3, service.plans[0].Window)
	})

	t.Run("BuilderError", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		buildErr := errors.New("storage is not reachable")
		rootCmd, config := newRootCmd(context.Background(), func(context.Context, *slog.Logger) (*Config, error) {
			return nil, buildErr
		})
		rootCmd.SetOut(io.Discard)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs([]string{"--config", configFile, "exchange"})

		err := execute(rootCmd, config)

		asserts.True(errors.Is(err, buildErr))
		asserts.Nil(config.Close)
	})

	t.Run("MissingConfigFile", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		called := false
		rootCmd, config := newRootCmd(context.Background(), func(context.Context, *slog.Logger) (*Config, error) {
			called = true
			return &Config{}, nil
		})
		rootCmd.SetOut(io.Discard)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yml"), "exchange", "1"})

		asserts.Error(execute(rootCmd, config))
		asserts.False(called)
	})
}
