package output

import (
	"fmt"
	"io"
	"syscall"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when write_line is called with anything
	// other than exactly one valid UTF-8 string. Nothing is written.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIO matches every *IOError.
	ErrIO = errors.New("io error")
)

// IOError reports a failed write to the sink. Written is the number of
// bytes of the line that reached the sink before the failure.
type IOError struct {
	Written int
	Err     error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to write line after %d bytes: %v", e.Written, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Readers like `head` close early and this is how it shows up.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
