package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can map it to a status code.
type Kind int

const (
	// Validation means a required input is missing or malformed.
	Validation Kind = iota + 1
	// NotFound means a referenced chat or message does not exist.
	NotFound
	// Store means the underlying message store failed.
	Store
	// BridgeUnavailable means the transport bridge could not be reached.
	BridgeUnavailable
	// BridgeRejected means the bridge answered with a non-success status.
	BridgeRejected
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Store:
		return "store"
	case BridgeUnavailable:
		return "bridge_unavailable"
	case BridgeRejected:
		return "bridge_rejected"
	}
	return "unknown"
}

// Fault is a typed failure crossing the service boundary.
type Fault struct {
	Kind Kind
	Msg  string
	Err  error

	// StatusCode and Body are set only for BridgeRejected faults and carry
	// the remote response unchanged.
	StatusCode int
	Body       string
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Msg, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

func (f *Fault) Unwrap() error { return f.Err }

// New creates a fault with a formatted message.
func New(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Rejected creates a BridgeRejected fault carrying the remote status and body.
func Rejected(statusCode int, body string) *Fault {
	return &Fault{
		Kind:       BridgeRejected,
		Msg:        fmt.Sprintf("bridge returned status %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

// KindOf extracts the kind from an error chain. Unclassified errors report
// Store, the catch-all for internal failures.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Store
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == kind
}
