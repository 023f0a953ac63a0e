package format

import (
	"strconv"

	"github.com/lawrencejones/bytesink/pkg/sinks"
)

var _ sinks.Sink = &Sink{}

// Converter renders an integer as bytes. It must be total and free of side effects.
type Converter func(int64) []byte

// Decimal is the canonical base 10 rendering: a leading '-' for negative values, no
// leading zeros unless the value is zero, no separators.
func Decimal(i int64) []byte {
	return strconv.AppendInt(nil, i, 10)
}

var newline = []byte{'\n'}

// Sink prints integers as text onto the sink it wraps. It holds no buffer, so every
// byte of output reaches the wrapped sink before a print call returns.
type Sink struct {
	inner   sinks.Sink
	convert Converter
}

// New wraps the given sink, rendering integers with Decimal unless told otherwise.
func New(inner sinks.Sink, opts ...func(*Sink)) *Sink {
	s := &Sink{inner: inner, convert: Decimal}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithConverter replaces the integer to text conversion.
func WithConverter(convert Converter) func(*Sink) {
	return func(s *Sink) {
		s.convert = convert
	}
}

// WriteByte passes b straight through to the wrapped sink.
func (s *Sink) WriteByte(b byte) error {
	return s.inner.WriteByte(b)
}

// PrintInteger writes the text form of i, without a line terminator.
func (s *Sink) PrintInteger(i int64) error {
	return sinks.WriteAll(s.inner, s.convert(i))
}

// PrintIntegerLine writes the text form of i followed by a newline. The newline is only
// written if every byte of the number was.
func (s *Sink) PrintIntegerLine(i int64) error {
	if err := s.PrintInteger(i); err != nil {
		return err
	}

	return sinks.WriteAll(s.inner, newline)
}
