package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/malusev998/currency-archive/output"
)

var ErrExchangeFailed = errors.New("exchange rates are not available")

func handleExchange(cmd *cobra.Command, config *Config, format string, args []string) error {
	var rawDays string
	var rawCurrencies []string

	if len(args) > 0 {
		rawDays = args[0]
		rawCurrencies = args[1:]
	}

	logger := config.Logger

	if logger == nil {
		logger = slog.Default()
	}

	if format == "" {
		format = config.Format
	}

	f, err := output.ConvertToFormatFromString(format)

	if err != nil {
		return err
	}

	out, err := output.New(f, cmd.OutOrStdout())

	if err != nil {
		return err
	}

	plan := config.Planner.Plan(rawDays, rawCurrencies)
	logger.Info("window computed", "days", plan.Window, "currencies", plan.Currencies)

	if f == output.Table {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\nPrivatBank exchange rate for the last %d day(s):\n\n", time.Now().Format(time.DateTime), plan.Window)
	}

	ctx := config.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	ok, days := config.Service.Exchange(ctx, plan)

	if err := out.Show(ok, days); err != nil {
		return err
	}

	if err := config.Metrics.WriteToTextfile(config.MetricsFile); err != nil {
		logger.Warn("metrics dump failed", "file", config.MetricsFile, "error", err)
	}

	if !ok {
		return ErrExchangeFailed
	}

	return nil
}

func exchange(config *Config) *cobra.Command {
	var format string

	exchangeCmd := &cobra.Command{
		Use:                "exchange [days] [currency...]",
		Aliases:            []string{"rates"},
		Short:              "Fetch exchange rates for the last days",
		Example:            "currency-archive exchange 5 USD EUR CHF",
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		// A negative day count must reach the planner instead of failing as a flag.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, err := parseFlags(cmd, args)

			if err != nil {
				return err
			}

			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}

			return handleExchange(cmd, config, format, positional)
		},
	}

	exchangeCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or table")

	return exchangeCmd
}
