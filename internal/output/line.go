//go:generate go run go.uber.org/mock/mockgen -destination=mock_writer_test.go -package=output io Writer

package output

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// LineWriter writes one message per call followed by a newline.
// It does not buffer between calls and does not lock; callers that need
// whole lines under concurrent use must serialize calls themselves.
type LineWriter struct {
	w io.Writer
}

// NewLineWriter returns a LineWriter over w. A nil w means os.Stdout.
func NewLineWriter(w io.Writer) *LineWriter {
	if w == nil {
		w = os.Stdout
	}
	return &LineWriter{w: w}
}

var std = NewLineWriter(nil)

// Default returns the LineWriter bound to the process standard output.
func Default() *LineWriter {
	return std
}

// WriteLine writes message and a newline to standard output.
func WriteLine(message string) (int, error) {
	return std.WriteLine(message)
}

// WriteLine writes message followed by '\n' and returns len(message),
// the UTF-8 byte length without the newline.
func (l *LineWriter) WriteLine(message string) (int, error) {
	if !utf8.ValidString(message) {
		return 0, errors.Wrap(ErrInvalidArgument, "message is not valid UTF-8")
	}
	n := len(message)
	bs := make([]byte, n+1)
	copy(bs, message)
	bs[n] = '\n'
	if err := l.writeAll(bs); err != nil {
		return 0, err
	}
	return n, nil
}

// Call is the dynamic entry point for hosts that pass untyped arguments.
// It accepts exactly one string.
func (l *LineWriter) Call(args ...interface{}) (int, error) {
	if len(args) != 1 {
		return 0, errors.Wrapf(ErrInvalidArgument, "expected 1 argument, got %d", len(args))
	}
	message, ok := args[0].(string)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "expected string argument, got %T", args[0])
	}
	return l.WriteLine(message)
}

func (l *LineWriter) writeAll(bs []byte) error {
	written := 0
	for written < len(bs) {
		n, err := l.w.Write(bs[written:])
		if n < 0 || n > len(bs)-written {
			return &IOError{Written: written, Err: errors.Errorf("sink reported invalid count %d", n)}
		}
		written += n
		if err != nil {
			return &IOError{Written: written, Err: err}
		}
		if n == 0 {
			return &IOError{Written: written, Err: io.ErrShortWrite}
		}
	}
	return nil
}
