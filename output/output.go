package output

import (
	"fmt"
	"io"
	"strings"

	currency "github.com/malusev998/currency-archive"
)

type Format string

const (
	JSON  Format = "json"
	Table Format = "table"
)

func ConvertToFormatFromString(str string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "json", "":
		return JSON, nil
	case "table":
		return Table, nil
	}

	return "", fmt.Errorf("value %s is not valid Format", str)
}

func New(format Format, w io.Writer) (currency.Output, error) {
	switch format {
	case JSON:
		return NewJSON(w), nil
	case Table:
		return NewTable(w), nil
	}

	return nil, fmt.Errorf("value %s is not valid Format", format)
}
