package worker

import (
	"testing"
	"time"

	"github.com/mimuret/nativelog/internal/config"
	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	nats "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runServer(t *testing.T, token string) *server.Server {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	opts.Authorization = token
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)
	return s
}

func newCounters() (*Counter, *Counter) {
	return NewCounter(prometheus.CounterOpts{Name: "in_total", Help: "in"}),
		NewCounter(prometheus.CounterOpts{Name: "lost_total", Help: "lost"})
}

func TestWorker_Receive(t *testing.T) {
	s := runServer(t, "")
	in, lost := newCounters()
	w := NewWorker(&config.Config{QueueSize: 8, Nats: config.Nats{Host: s.ClientURL(), Subject: "logs.>"}}, in, lost)
	require.NoError(t, w.Run())
	defer w.Stop()

	pub, err := nats.Connect(s.ClientURL())
	require.NoError(t, err)
	defer pub.Close()
	require.NoError(t, pub.Publish("logs.app", []byte("hello")))
	require.NoError(t, pub.Publish("other", []byte("ignored")))
	require.NoError(t, pub.Publish("logs.db", []byte("café")))
	require.NoError(t, pub.Flush())

	for _, want := range []string{"hello", "café"} {
		select {
		case bs := <-w.Read():
			assert.Equal(t, want, string(bs))
		case <-time.After(5 * time.Second):
			t.Fatalf("did not receive %q", want)
		}
	}
	assert.Equal(t, uint64(2), in.Get())
	assert.Equal(t, uint64(0), lost.Get())
	assert.Equal(t, uint64(2), w.Stats().InMsgs)
}

func TestWorker_Token(t *testing.T) {
	s := runServer(t, "s3cr3t")
	in, lost := newCounters()

	w := NewWorker(&config.Config{Nats: config.Nats{Host: s.ClientURL(), Subject: "logs", Token: "wrong"}}, in, lost)
	assert.Error(t, w.Run())
	w.Stop()

	w = NewWorker(&config.Config{Nats: config.Nats{Host: s.ClientURL(), Subject: "logs", Token: "s3cr3t"}}, in, lost)
	require.NoError(t, w.Run())
	w.Stop()
}

func TestWorker_ConnectError(t *testing.T) {
	in, lost := newCounters()
	w := NewWorker(&config.Config{Nats: config.Nats{Host: "nats://127.0.0.1:1", Subject: "logs"}}, in, lost)
	assert.Error(t, w.Run())
	assert.Equal(t, nats.Statistics{}, w.Stats())
	w.Stop()
}
