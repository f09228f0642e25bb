package currency

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type (
	Plan struct {
		Window     int
		Endpoints  []Endpoint
		Currencies []string
	}

	Endpoint struct {
		Date time.Time
		URL  string
	}

	Rate struct {
		BaseCurrency   string              `json:"baseCurrency,omitempty"`
		Currency       string              `json:"currency"`
		SaleRateNB     decimal.NullDecimal `json:"saleRateNB"`
		PurchaseRateNB decimal.NullDecimal `json:"purchaseRateNB"`
		SaleRate       decimal.NullDecimal `json:"saleRate"`
		PurchaseRate   decimal.NullDecimal `json:"purchaseRate"`
	}

	DayRecord struct {
		Date            string `json:"date"`
		Bank            string `json:"bank,omitempty"`
		BaseCurrencyLit string `json:"baseCurrencyLit,omitempty"`
		ExchangeRate    []Rate `json:"exchangeRate"`
	}

	CurrencyRate struct {
		Currency string
		Sale     decimal.NullDecimal
		Purchase decimal.NullDecimal
	}

	// FilteredDay keeps rates in the order of the currency filter.
	FilteredDay struct {
		Date  string
		Rates []CurrencyRate
	}

	AuditEntry struct {
		URL        string
		Date       string
		Payload    []byte
		ReceivedAt time.Time
	}

	AuditEntryWithID struct {
		AuditEntry
		ID interface{}
	}
)

// Valid reports whether the record carries a date and a rate list.
func (d *DayRecord) Valid() bool {
	return d != nil && d.Date != "" && d.ExchangeRate != nil
}

// MarshalJSON renders {"<date>": {"<currency>": {"sale": x, "purchase": y}}}.
func (f FilteredDay) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	date, err := json.Marshal(f.Date)
	if err != nil {
		return nil, err
	}

	buf.WriteByte('{')
	buf.Write(date)
	buf.WriteString(":{")

	for i, r := range f.Rates {
		if i > 0 {
			buf.WriteByte(',')
		}

		code, err := json.Marshal(r.Currency)
		if err != nil {
			return nil, err
		}

		buf.Write(code)
		buf.WriteString(`:{"sale":`)
		writeNullDecimal(&buf, r.Sale)
		buf.WriteString(`,"purchase":`)
		writeNullDecimal(&buf, r.Purchase)
		buf.WriteByte('}')
	}

	buf.WriteString("}}")

	return buf.Bytes(), nil
}

func writeNullDecimal(buf *bytes.Buffer, d decimal.NullDecimal) {
	if !d.Valid {
		buf.WriteString("null")
		return
	}

	buf.WriteString(d.Decimal.String())
}
