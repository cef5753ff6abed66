package export

/* sink.go contains the output sink abstraction. The exporter only ever sees
the Sink interface, so the classic failure modes of a raw file handle (open
never checked, writes never checked, handle shared globally) can't leak into
the export loop. */

import (
	"bufio"
	"fmt"
	"os"
)

// Sink is an appendable text destination. A Sink is exclusively owned by one
// export pass: acquired at entry, closed on every exit path. It is not safe
// for concurrent use.
type Sink interface {
	// WriteLine writes one line followed by a newline. The line must not
	// already contain a newline.
	WriteLine(line []byte) error
	// Close flushes buffered lines and releases the destination. A Close
	// error means previously accepted lines may not have reached the
	// destination.
	Close() error
}

// fileSink implements the Sink interface over a buffered file. See the Sink
// interface for method documentation.
type fileSink struct {
	path string
	f    *os.File
	buf  *bufio.Writer
}

var _ Sink = &fileSink{}

// FileSink opens path in append mode, creating it if needed. The returned
// error wraps ErrSinkUnavailable.
func FileSink(path string) (Sink, error) {
	return newFileSink(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND)
}

// TruncSink opens path truncated to zero length, creating it if needed. The
// returned error wraps ErrSinkUnavailable.
func TruncSink(path string) (Sink, error) {
	return newFileSink(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
}

func newFileSink(path string, flag int) (Sink, error) {
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: the file '%s' could not be opened: %v",
			ErrSinkUnavailable, path, err)
	}
	return &fileSink{path, f, bufio.NewWriter(f)}, nil
}

func (s *fileSink) WriteLine(line []byte) error {
	if _, err := s.buf.Write(line); err != nil {
		return s.writeError(err)
	}
	if err := s.buf.WriteByte('\n'); err != nil {
		return s.writeError(err)
	}
	return nil
}

func (s *fileSink) Close() error {
	ferr := s.buf.Flush()
	cerr := s.f.Close()
	if ferr != nil { return s.writeError(ferr) }
	if cerr != nil { return s.writeError(cerr) }
	return nil
}

func (s *fileSink) writeError(err error) error {
	return fmt.Errorf("%w: the file '%s' could not be written to: %v",
		ErrSinkUnavailable, s.path, err)
}
