package sinks

import (
	"errors"
	"fmt"
)

// Sink is the destination for a stream of bytes. WriteByte either writes exactly one byte
// or fails without writing anything: there are no partial bytes.
//
// Implementations are not required to be safe for concurrent use. Callers sharing a sink
// between goroutines must serialise access themselves.
type Sink interface {
	WriteByte(byte) error
}

// SinkFunc lets an ordinary function satisfy the Sink interface.
type SinkFunc func(byte) error

func (f SinkFunc) WriteByte(b byte) error {
	return f(b)
}

var (
	// ErrNullInput is returned when a bulk write is given a nil byte slice. An empty but
	// non-nil slice is valid input.
	ErrNullInput = errors.New("byte sequence is nil")

	// ErrRange is returned when the offset and length of a bulk write do not describe a
	// range inside the byte slice. It is wrapped with the values that failed the check.
	ErrRange = errors.New("offset or length out of range")
)

// TransportError is returned by terminal sinks when the underlying transport failed to
// accept a byte. It wraps whatever error the transport gave us.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("transport fault: %v", e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// Fault names the kind of failure an error represents, suitable for use as a metric
// label or log field.
func Fault(err error) string {
	var transportErr TransportError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNullInput):
		return "null_input"
	case errors.Is(err, ErrRange):
		return "range"
	case errors.As(err, &transportErr):
		return "transport"
	default:
		return "unknown"
	}
}
