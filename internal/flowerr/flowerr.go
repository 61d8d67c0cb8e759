// Package flowerr defines the failure taxonomy shared by node
// implementations and the graph scheduler.
//
// Every recoverable failure is a *Error whose Kind is one of the sentinel
// values below, so callers can classify failures with errors.Is and recover
// the offending port or key with errors.As.
package flowerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrType means a port or key held a different content variant than requested.
	ErrType = errors.New("type error")
	// ErrConstantMissing means a node constant was not declared.
	ErrConstantMissing = errors.New("constant missing")
	// ErrNotConnected means an input, environment key or constant had no value.
	ErrNotConnected = errors.New("not connected")
	// ErrUnfilledOutputs means a node returned without setting every declared output.
	ErrUnfilledOutputs = errors.New("unfilled outputs")
	// ErrMissingPort means a write or link targeted an undeclared port.
	ErrMissingPort = errors.New("missing port")
	// ErrCycle means the reachable part of the graph is not a DAG.
	ErrCycle = errors.New("cycle detected")
	// ErrOther is a node specific domain failure.
	ErrOther = errors.New("node error")
)

// Error is a classified execution failure.
type Error struct {
	Kind   error
	Port   string
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Port != "" {
		fmt.Fprintf(&b, " (%s)", e.Port)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap exposes the sentinel kind, and the cause if any, to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// TypeError reports that port carried want but got was found.
func TypeError(port, want, got string) *Error {
	return &Error{Kind: ErrType, Port: port, Detail: fmt.Sprintf("expected %s, got %s", want, got)}
}

// ConstantMissing reports an undeclared constant.
func ConstantMissing(name string) *Error {
	return &Error{Kind: ErrConstantMissing, Port: name}
}

// NotConnected reports a missing input link, environment key or constant value.
func NotConnected(port string) *Error {
	return &Error{Kind: ErrNotConnected, Port: port}
}

// UnfilledOutputs reports the declared outputs a node never set.
func UnfilledOutputs(ports []string) *Error {
	return &Error{Kind: ErrUnfilledOutputs, Port: strings.Join(ports, ", ")}
}

// MissingPort reports a write or link to an undeclared port.
func MissingPort(port string) *Error {
	return &Error{Kind: ErrMissingPort, Port: port}
}

// Cycle reports a dependency cycle through the named node.
func Cycle(node string) *Error {
	return &Error{Kind: ErrCycle, Port: node}
}

// Otherf builds a node specific failure.
func Otherf(format string, args ...any) *Error {
	return &Error{Kind: ErrOther, Detail: fmt.Sprintf(format, args...)}
}

// Classify returns err unchanged if it already carries a kind, and wraps it
// as ErrOther otherwise.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Kind: ErrOther, Detail: err.Error(), Cause: err}
}

var kinds = []error{ErrType, ErrConstantMissing, ErrNotConnected, ErrUnfilledOutputs, ErrMissingPort, ErrCycle, ErrOther}

// KindOf returns the sentinel kind err carries, or nil.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Port returns the port or key carried by err, if it wraps an *Error.
func Port(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Port
	}
	return ""
}
