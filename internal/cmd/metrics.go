package cmd

import (
	"net/http"

	"github.com/mimuret/nativelog/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type metrics struct {
	registry *prometheus.Registry
	in       *worker.Counter
	lost     *worker.Counter
	lines    *worker.Counter
	bytes    *worker.Counter
	failed   *worker.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		in:       newCounter("received_total", "messages received from nats"),
		lost:     newCounter("lost_total", "messages dropped by the receive buffer"),
		lines:    newCounter("lines_total", "lines written"),
		bytes:    newCounter("bytes_total", "message bytes written, newline excluded"),
		failed:   newCounter("failed_total", "messages that could not be written"),
	}
	m.registry.MustRegister(m.in, m.lost, m.lines, m.bytes, m.failed)
	return m
}

func newCounter(name, help string) *worker.Counter {
	return worker.NewCounter(prometheus.CounterOpts{
		Namespace: "nativelog",
		Name:      name,
		Help:      help,
	})
}

func (m *metrics) written(n int) {
	m.lines.Inc()
	m.bytes.Add(float64(n))
}

// serve exposes /metrics on addr until the process exits.
func (m *metrics) serve(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	go func() {
		log.WithField("addr", addr).Info("serve metrics")
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Errorf("metrics server stopped: %v", err)
		}
	}()
}
