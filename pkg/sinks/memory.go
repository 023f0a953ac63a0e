package sinks

import (
	"sync"
)

// MemorySink is a reference implementation of a sink, storing every byte it is given in
// an in-memory buffer. Unlike most sinks it is safe for concurrent use.
//
// It is mostly useful for testing code that writes to sinks without needing a real
// descriptor behind it.
type MemorySink struct {
	buf []byte
	sync.Mutex
}

func NewMemorySink() *MemorySink {
	return &MemorySink{buf: []byte{}}
}

func (s *MemorySink) WriteByte(b byte) error {
	s.Lock()
	defer s.Unlock()

	s.buf = append(s.buf, b)
	return nil
}

// Bytes returns a copy of everything written so far.
func (s *MemorySink) Bytes() []byte {
	s.Lock()
	defer s.Unlock()

	return append([]byte(nil), s.buf...)
}

func (s *MemorySink) String() string {
	return string(s.Bytes())
}

// Reset discards everything written so far.
func (s *MemorySink) Reset() {
	s.Lock()
	defer s.Unlock()

	s.buf = s.buf[:0]
}
