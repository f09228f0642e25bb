package output

import (
	"encoding/json"
	"io"

	currency "github.com/malusev998/currency-archive"
)

type jsonOutput struct {
	w io.Writer
}

// NewJSON writes the filtered days as an indented JSON array, or
// {"success": false} when the answer was rejected.
func NewJSON(w io.Writer) currency.Output {
	return jsonOutput{w: w}
}

func (j jsonOutput) Show(ok bool, days []currency.FilteredDay) error {
	encoder := json.NewEncoder(j.w)
	encoder.SetIndent("", "  ")

	if !ok {
		return encoder.Encode(map[string]bool{"success": false})
	}

	if days == nil {
		days = []currency.FilteredDay{}
	}

	return encoder.Encode(days)
}
