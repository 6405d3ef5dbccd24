package output

// Nothing discards everything. It is the sink behind --dry-run.
type Nothing struct {
}

func NewNothing() *Nothing {
	return &Nothing{}
}

func (f *Nothing) Write(bs []byte) (int, error) {
	return len(bs), nil
}

func (f *Nothing) Close() error {
	return nil
}
