package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	currency "github.com/malusev998/currency-archive"
	"github.com/malusev998/currency-archive/metrics"
	"github.com/malusev998/currency-archive/planner"
)

const defaultConfigFile = "./config.yml"

type (
	Config struct {
		Ctx         context.Context
		Planner     planner.Planner
		Service     currency.Service
		Logger      *slog.Logger
		Metrics     *metrics.Metrics
		MetricsFile string
		Format      string
		Close       func() error
	}

	// Builder wires the dependencies once flags and the config file are read.
	Builder func(ctx context.Context, logger *slog.Logger) (*Config, error)
)

func Execute(ctx context.Context, build Builder) error {
	rootCmd, config := newRootCmd(ctx, build)

	return execute(rootCmd, config)
}

func execute(rootCmd *cobra.Command, config *Config) error {
	defer func() {
		if config.Close != nil {
			_ = config.Close()
		}
	}()

	return rootCmd.Execute()
}

func newRootCmd(ctx context.Context, build Builder) (*cobra.Command, *Config) {
	var (
		debug      bool
		configFile string
	)

	config := &Config{Ctx: ctx}

	rootCmd := &cobra.Command{
		Use:          "currency-archive",
		Short:        "PrivatBank exchange rate archive fetcher",
		Version:      "v1.0.0",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.DisableFlagParsing {
				if _, err := parseFlags(cmd, args); err != nil {
					return err
				}
			}

			if err := readConfig(configFile); err != nil {
				return err
			}

			built, err := build(ctx, newLogger(cmd.ErrOrStderr(), debug))

			if err != nil {
				return err
			}

			*config = *built

			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile, "Path to config file")

	viper.SetEnvPrefix("CURRENCY_ARCHIVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(exchange(config))

	return rootCmd, config
}

func readConfig(path string) error {
	absolutePath, err := filepath.Abs(path)

	if err != nil {
		return err
	}

	if _, err := os.Stat(absolutePath); errors.Is(err, fs.ErrNotExist) && path == defaultConfigFile {
		return nil
	}

	viper.SetConfigFile(absolutePath)

	return viper.ReadInConfig()
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo

	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
