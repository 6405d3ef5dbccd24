package worker

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var _ prometheus.Counter = &Counter{}

// Counter is a prometheus counter that can also be read back.
type Counter struct {
	sync.Mutex
	prometheus.Counter
	v uint64
}

func NewCounter(opts prometheus.CounterOpts) *Counter {
	return &Counter{Counter: prometheus.NewCounter(opts)}
}

func (c *Counter) Get() uint64 {
	c.Lock()
	defer c.Unlock()
	return c.v
}

func (c *Counter) Inc() {
	c.Add(1)
}

func (c *Counter) Add(v float64) {
	c.Lock()
	defer c.Unlock()
	c.v += uint64(v)
	c.Counter.Add(v)
}
