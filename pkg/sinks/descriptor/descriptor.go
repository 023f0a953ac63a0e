package descriptor

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin"
	"github.com/lawrencejones/bytesink/pkg/sinks"
	"github.com/pkg/errors"
)

var _ sinks.Sink = &Sink{}

// Sink forwards each byte, unbuffered, to the transport behind a descriptor. It does no
// retries and no encoding: one WriteByte is one single-byte write on the transport.
type Sink struct {
	fd io.Writer
}

// New binds a sink to the given descriptor. The descriptor is owned by the caller, who
// is responsible for keeping it valid for as long as the sink is used.
func New(fd io.Writer) (*Sink, error) {
	if fd == nil {
		return nil, errors.New("descriptor must not be nil")
	}

	if file, ok := fd.(*os.File); ok && file == nil {
		return nil, errors.New("descriptor must not be a nil file")
	}

	return &Sink{fd: fd}, nil
}

// WriteByte writes b to the descriptor. Any failure, including the transport accepting
// zero bytes without an error, is returned as a sinks.TransportError.
func (s *Sink) WriteByte(b byte) error {
	buf := [1]byte{b}
	n, err := s.fd.Write(buf[:])
	if err != nil {
		return sinks.TransportError{Err: errors.Wrap(err, "failed to write byte to descriptor")}
	}

	if n != 1 {
		return sinks.TransportError{Err: errors.Wrap(io.ErrShortWrite, "descriptor accepted no bytes")}
	}

	return nil
}

type Options struct {
	Path string
}

func (opt *Options) Bind(cmd *kingpin.CmdClause, prefix string) *Options {
	cmd.Flag(fmt.Sprintf("%spath", prefix), "File path of the output descriptor").Default("/dev/stdout").StringVar(&opt.Path)

	return opt
}

// Open resolves the configured path to a descriptor and binds a sink to it. The
// standard streams are reused rather than reopened, and must not be closed by the
// caller. For any other path, the returned file should be closed once the sink is no
// longer needed.
func Open(opts Options) (*Sink, *os.File, error) {
	file, err := openFile(opts.Path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open descriptor %s", opts.Path)
	}

	sink, err := New(file)
	if err != nil {
		return nil, nil, err
	}

	return sink, file, nil
}

func openFile(path string) (*os.File, error) {
	switch path {
	case "/dev/stdout":
		return os.Stdout, nil
	case "/dev/stderr":
		return os.Stderr, nil
	}

	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
