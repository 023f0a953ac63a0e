package sinks

import (
	"github.com/pkg/errors"
)

// WriteAll writes every byte of b to the sink, in order. It is WriteRange over the whole
// slice, so a nil slice fails with ErrNullInput.
func WriteAll(sink Sink, b []byte) error {
	return WriteRange(sink, b, 0, len(b))
}

// WriteRange writes b[offset:offset+length] to the sink one byte at a time, in
// increasing order.
//
// The range is validated before anything is written, checking in this order: b is
// non-nil, offset is inside [0, len(b)], length is non-negative, the range ends inside b
// and offset+length has not overflowed. The first check to fail decides the error, and
// the sink is never called.
//
// The first error from the sink stops the write and is returned unchanged. Bytes written
// before that error stay written.
func WriteRange(sink Sink, b []byte, offset, length int) error {
	if b == nil {
		return ErrNullInput
	}

	if offset < 0 || offset > len(b) {
		return errors.Wrapf(ErrRange, "offset %d outside buffer of %d bytes", offset, len(b))
	}

	if length < 0 {
		return errors.Wrapf(ErrRange, "negative length %d", length)
	}

	if offset+length > len(b) {
		return errors.Wrapf(ErrRange, "range [%d, %d) exceeds buffer of %d bytes", offset, offset+length, len(b))
	}

	// Both terms are non-negative here, so a sum that wrapped past the largest int comes
	// out negative and slips under the check above.
	if offset+length < 0 {
		return errors.Wrapf(ErrRange, "offset %d plus length %d overflows", offset, length)
	}

	if length == 0 {
		return nil
	}

	for i := 0; i < length; i++ {
		if err := sink.WriteByte(b[offset+i]); err != nil {
			return err
		}
	}

	return nil
}
