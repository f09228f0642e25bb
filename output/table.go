package output

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shopspring/decimal"

	currency "github.com/malusev998/currency-archive"
)

var tableHeader = []string{"Date", "Currency", "Sale", "Purchase"}

type tableOutput struct {
	w io.Writer
}

func NewTable(w io.Writer) currency.Output {
	return tableOutput{w: w}
}

func (t tableOutput) Show(ok bool, days []currency.FilteredDay) error {
	if !ok {
		_, err := color.New(color.FgRed).Fprintln(t.w, "✗ exchange rates are not available")
		return err
	}

	table := tablewriter.NewTable(t.w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
	)

	table.Header(tableHeader)

	if err := table.Bulk(rows(days)); err != nil {
		return err
	}

	if err := table.Render(); err != nil {
		return err
	}

	_, err := color.New(color.FgGreen).Fprintf(t.w, "✓ %d day(s)\n", len(days))

	return err
}

func rows(days []currency.FilteredDay) [][]string {
	result := make([][]string, 0, len(days))

	for _, day := range days {
		if len(day.Rates) == 0 {
			result = append(result, []string{day.Date, "-", "-", "-"})
			continue
		}

		for _, r := range day.Rates {
			result = append(result, []string{day.Date, r.Currency, cell(r.Sale), cell(r.Purchase)})
		}
	}

	return result
}

func cell(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}

	return d.Decimal.String()
}
