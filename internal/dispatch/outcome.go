package dispatch

import "fmt"

// Result identifies the terminal state a pipeline run reached.
type Result int

const (
	// ResultBadRequest means the tenant identifier could not be extracted
	// from the event source URL. The only outcome reported as a client
	// error; everything below is a legitimate business outcome.
	ResultBadRequest Result = iota
	// ResultNotConfigured means no active tenant is registered for the
	// subdomain. A normal, frequent case, not a failure.
	ResultNotConfigured
	// ResultSuppressed means the tenant is still inside its cooldown window.
	ResultSuppressed
	// ResultOutsideFence means the reported coordinate is outside the fence.
	ResultOutsideFence
	// ResultSent means a dispatch attempt was made and the cooldown mark
	// recorded, regardless of transport outcome.
	ResultSent
)

func (r Result) String() string {
	switch r {
	case ResultBadRequest:
		return "bad_request"
	case ResultNotConfigured:
		return "not_configured"
	case ResultSuppressed:
		return "suppressed"
	case ResultOutsideFence:
		return "outside_fence"
	case ResultSent:
		return "sent"
	default:
		return "unknown"
	}
}

// Outcome is the terminal report of one pipeline run.
type Outcome struct {
	Result           Result
	Subdomain        string
	RemainingMinutes int64
}

// Message returns the plaintext body surfaced to the webhook caller.
func (o Outcome) Message() string {
	switch o.Result {
	case ResultBadRequest:
		return "Could not extract subdomain"
	case ResultNotConfigured:
		return "User not configured or inactive"
	case ResultSuppressed:
		return fmt.Sprintf("Cooldown active (%d min remaining)", o.RemainingMinutes)
	case ResultOutsideFence:
		return "Outside Geofence"
	case ResultSent:
		return "SMS Sent"
	default:
		return ""
	}
}
