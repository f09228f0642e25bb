package currency

type OutcomeKind uint8

const (
	OutcomeDropped OutcomeKind = iota
	OutcomePayload
	OutcomeStatusCode
)

// Outcome is the result of fetching a single Endpoint. Exactly one of
// Record, StatusCode or Err is meaningful, depending on Kind.
type Outcome struct {
	Kind       OutcomeKind
	Endpoint   Endpoint
	Record     *DayRecord
	StatusCode int
	Err        error
}

func Payload(endpoint Endpoint, record *DayRecord) Outcome {
	return Outcome{Kind: OutcomePayload, Endpoint: endpoint, Record: record}
}

func Status(endpoint Endpoint, code int) Outcome {
	return Outcome{Kind: OutcomeStatusCode, Endpoint: endpoint, StatusCode: code}
}

func Dropped(endpoint Endpoint, err error) Outcome {
	return Outcome{Kind: OutcomeDropped, Endpoint: endpoint, Err: err}
}

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePayload:
		return "payload"
	case OutcomeStatusCode:
		return "status_code"
	case OutcomeDropped:
		return "dropped"
	}

	return "unknown"
}
