package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	c.Inc()
	c.Add(5)
	assert.Equal(t, uint64(6), c.Get())
}
