package output

import "os"

// Stdout is the process standard output as a sink. Close leaves fd 1 open.
type Stdout struct {
}

func NewStdout() *Stdout {
	return &Stdout{}
}

func (f *Stdout) Write(bs []byte) (int, error) {
	return os.Stdout.Write(bs)
}

func (f *Stdout) Close() error {
	return nil
}
