package worker

import (
	"github.com/mimuret/dtap"
	"github.com/mimuret/nativelog/internal/config"
	nats "github.com/nats-io/nats.go"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	NatsClientQueueLen = 4096
)

// Worker subscribes to the configured NATS subject and queues every
// payload in a ring buffer. When the buffer is full the oldest payload
// is dropped and counted as lost.
type Worker struct {
	RBuf   *dtap.RBuf
	config *config.Config
	con    *nats.Conn
	sub    *nats.Subscription
}

func NewWorker(c *config.Config, inCounter, lostCounter prometheus.Counter) *Worker {
	return &Worker{
		config: c,
		RBuf:   dtap.NewRbuf(uint(c.GetQueueSize()), inCounter, lostCounter),
	}
}

func (w *Worker) Run() error {
	sub, err := w.subscribe()
	if err != nil {
		return err
	}
	w.sub = sub
	return nil
}

// Read returns the channel payloads are delivered on.
func (w *Worker) Read() <-chan []byte {
	return w.RBuf.Read()
}

func (w *Worker) Stop() {
	if w.sub != nil {
		w.sub.Unsubscribe()
		w.sub = nil
	}
	if w.con != nil {
		w.con.Drain()
	}
}

func (w *Worker) Stats() nats.Statistics {
	if w.con == nil {
		return nats.Statistics{}
	}
	return w.con.Stats()
}

func (w *Worker) options() []nats.Option {
	c := w.config
	opts := []nats.Option{nats.SyncQueueLen(NatsClientQueueLen)}
	if c.Nats.Token != "" {
		opts = append(opts, nats.Token(c.Nats.Token))
	} else if c.Nats.User != "" {
		opts = append(opts, nats.UserInfo(c.Nats.User, c.Nats.Password))
	}
	return opts
}

func (w *Worker) subscribe() (*nats.Subscription, error) {
	var err error
	c := w.config
	w.con, err = nats.Connect(c.Nats.Host, w.options()...)
	if err != nil {
		return nil, errors.Errorf("can't connect nats: %v", err)
	}
	sub, err := w.con.Subscribe(c.Nats.Subject, w.subscribeCB)
	if err != nil {
		w.con.Close()
		return nil, errors.Wrapf(err, "can't subscribe `%s`", c.Nats.Subject)
	}
	// make sure the server has the interest before Run returns
	if err := w.con.Flush(); err != nil {
		w.con.Close()
		return nil, errors.Wrap(err, "can't flush subscription")
	}
	return sub, nil
}

func (w *Worker) subscribeCB(msg *nats.Msg) {
	w.RBuf.Write(msg.Data)
}
