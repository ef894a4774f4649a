// Package fault defines the error taxonomy shared by the core components.
//
// The store and engine layers return faults for every expected failure;
// only the transport layer translates them into HTTP status codes. A fault
// never carries HTTP-specific data.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a fault for the transport layer.
type Kind int

const (
	// KindTransient marks adapter or infrastructure failures that are not
	// the caller's fault. The zero value, so unclassified errors degrade to it.
	KindTransient Kind = iota

	// KindUnauthenticated marks requests with a missing or unverifiable credential.
	KindUnauthenticated

	// KindForbidden marks authenticated requests the policy denies.
	KindForbidden

	// KindNotFound marks requests naming a resource that does not exist.
	KindNotFound

	// KindConflict marks uniqueness violations.
	KindConflict

	// KindValidation marks input shape or range violations. The fault carries
	// every violated rule, not just the first.
	KindValidation
)

// Fault is a typed, transport-agnostic failure.
type Fault struct {
	Kind    Kind
	Message string

	// Fields holds per-field messages for validation faults.
	Fields []string

	// Err is the underlying cause, if any.
	Err error
}

func (f *Fault) Error() string {
	if len(f.Fields) > 0 {
		return strings.Join(f.Fields, "; ")
	}
	if f.Message != "" {
		return f.Message
	}
	if f.Err != nil {
		return f.Err.Error()
	}
	return "internal error"
}

func (f *Fault) Unwrap() error { return f.Err }

// Unauthenticated builds a credential-missing fault.
func Unauthenticated(message string) *Fault {
	return &Fault{Kind: KindUnauthenticated, Message: message}
}

// Forbidden builds a policy-denial fault.
func Forbidden(message string) *Fault {
	return &Fault{Kind: KindForbidden, Message: message}
}

// NotFound builds a missing-resource fault.
func NotFound() *Fault {
	return &Fault{Kind: KindNotFound, Message: "Not Found"}
}

// Conflict builds a uniqueness-violation fault.
func Conflict(message string) *Fault {
	return &Fault{Kind: KindConflict, Message: message}
}

// Invalid builds a validation fault carrying every violated rule.
func Invalid(fields ...string) *Fault {
	return &Fault{Kind: KindValidation, Fields: fields}
}

// Transient wraps an unexpected adapter failure.
func Transient(err error) *Fault {
	return &Fault{Kind: KindTransient, Message: "Internal Server Error", Err: err}
}

// Transientf wraps an unexpected failure with a formatted cause.
func Transientf(format string, args ...any) *Fault {
	return &Fault{Kind: KindTransient, Message: "Internal Server Error", Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the kind from an error chain. Non-fault errors are transient.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindTransient
}

// As returns the fault in err's chain, or nil.
func As(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return nil
}
