// Package stdout holds the process-wide formatting sink bound to standard output.
//
// Prefer passing a sink to the code that needs one. This exists for the places where
// there is nowhere to inject it from.
package stdout

import (
	"os"
	"sync"

	"github.com/lawrencejones/bytesink/pkg/sinks/descriptor"
	"github.com/lawrencejones/bytesink/pkg/sinks/format"
)

var (
	once sync.Once
	out  *format.Sink
)

// Default returns the shared sink, building it on first use. Every call returns the same
// instance. It is never closed: standard output lives as long as the process.
func Default() *format.Sink {
	once.Do(func() {
		fd, err := descriptor.New(os.Stdout)
		if err != nil {
			panic(err)
		}

		out = format.New(fd)
	})

	return out
}
