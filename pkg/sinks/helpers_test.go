package sinks_test

import (
	"github.com/lawrencejones/bytesink/pkg/sinks"
)

const maxInt = int(^uint(0) >> 1)

// fakeSink records every byte it accepts, and can be told to fail a specific call. Calls
// counts every attempt, including the one that failed.
type fakeSink struct {
	*sinks.MemorySink
	Calls  int
	FailOn int // 1-indexed call to fail, or zero to never fail
	Err    error
}

func newFakeSink() *fakeSink {
	return &fakeSink{MemorySink: sinks.NewMemorySink()}
}

// Fail causes the nth call to WriteByte, counting from one, to return err.
func (f *fakeSink) Fail(n int, err error) *fakeSink {
	f.FailOn, f.Err = n, err
	return f
}

func (f *fakeSink) WriteByte(b byte) error {
	f.Calls++
	if f.FailOn != 0 && f.Calls == f.FailOn {
		return f.Err
	}

	return f.MemorySink.WriteByte(b)
}
