package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mimuret/nativelog/internal/config"
	"github.com/mimuret/nativelog/internal/format"
	"github.com/mimuret/nativelog/internal/output"
	"github.com/mimuret/nativelog/internal/worker"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	defaultEndTime = time.Unix(1<<63-62135596801, 999999999)
)

type Runtime struct {
	formater  format.Formater
	startTime time.Time
	endTime   time.Time
	config    *config.Config
}

func newSubscribeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Write messages from a nats subject as lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := prepare(v)
			if err != nil {
				return err
			}
			return run(v, rt)
		},
	}
	cmd.Flags().StringP("start", "s", "", "start time RFC3339 format (default is now)")
	cmd.Flags().StringP("end", "e", "", "end time RFC3339 format (default is Inf)")
	v.BindPFlag("start", cmd.Flags().Lookup("start"))
	v.BindPFlag("end", cmd.Flags().Lookup("end"))
	return cmd
}

func prepare(v *viper.Viper) (*Runtime, error) {
	var err error
	rt := &Runtime{endTime: defaultEndTime}
	if rt.formater, err = format.New(v.GetString("output"), v.GetString("template")); err != nil {
		return nil, err
	}
	rt.config, err = config.GetConfig(v)
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	if v.GetString("start") != "" {
		if rt.startTime, err = time.Parse(time.RFC3339, v.GetString("start")); err != nil {
			return nil, fmt.Errorf("failed to get start time: %w", err)
		}
	}
	if v.GetString("end") != "" {
		if rt.endTime, err = time.Parse(time.RFC3339, v.GetString("end")); err != nil {
			return nil, fmt.Errorf("failed to get end time: %w", err)
		}
	}
	if rt.startTime.After(rt.endTime) {
		return nil, fmt.Errorf("startTime after endTime")
	}
	return rt, nil
}

func run(v *viper.Viper, rt *Runtime) error {
	sleepDuration := time.Until(rt.startTime)
	ctx, cancel := context.WithDeadline(context.Background(), rt.endTime)
	defer cancel()
	if rt.startTime.Before(time.Now()) {
		log.Info("start now")
	} else {
		log.WithFields(log.Fields{
			"utc":   rt.startTime.UTC().String(),
			"local": rt.startTime.Local().String(),
		}).Info("start at")
	}
	if rt.endTime.Equal(defaultEndTime) {
		log.Info("end at infinity")
	} else {
		log.WithFields(log.Fields{
			"utc":   rt.endTime.UTC().String(),
			"local": rt.endTime.Local().String(),
		}).Info("end at")
	}
	sink, err := newSink(v)
	if err != nil {
		return err
	}
	defer sink.Close()

	m := newMetrics()
	m.serve(v.GetString("metrics-addr"))
	w := worker.NewWorker(rt.config, m.in, m.lost)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGABRT, syscall.SIGINT)
	defer signal.Stop(sigCh)

	if !waitStart(sleepDuration, sigCh) {
		log.Info("signal received before start")
		return nil
	}
	log.Info("start now ", time.Now().String())
	if err := w.Run(); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	defer w.Stop()

	p := &pump{
		lw:       output.NewLineWriter(sink),
		formater: rt.formater,
		subject:  rt.config.Nats.Subject,
		metrics:  m,
	}
	err = p.loop(ctx, w.Read(), sigCh)
	log.WithFields(log.Fields{
		"lines": m.lines.Get(),
		"bytes": m.bytes.Get(),
		"lost":  m.lost.Get(),
		"in":    w.Stats().InMsgs,
	}).Info("finished ", time.Now().String())
	return err
}

// waitStart blocks for d and reports false when a signal arrives first.
func waitStart(d time.Duration, sigCh <-chan os.Signal) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-sigCh:
		return false
	}
}

type pump struct {
	lw       *output.LineWriter
	formater format.Formater
	subject  string
	metrics  *metrics
}

// loop writes every payload from src as a line until ctx ends, a signal
// arrives or the output pipe is closed by the reader.
func (p *pump) loop(ctx context.Context, src <-chan []byte, sigCh <-chan os.Signal) error {
	for {
		select {
		case <-ctx.Done():
			log.Info("done")
			return nil
		case <-sigCh:
			log.Info("signal received")
			return nil
		case bs := <-src:
			err := p.write(bs)
			if err == nil {
				continue
			}
			p.metrics.failed.Inc()
			switch {
			case output.IsBrokenPipe(err):
				log.Info("output closed by reader")
				return nil
			case errors.Is(err, output.ErrInvalidArgument):
				log.Warnf("skip message: %v", err)
			default:
				log.Errorf("failed to write: %v", err)
			}
		}
	}
}

func (p *pump) write(bs []byte) error {
	line, err := p.formater.Format(&format.Record{
		Message: string(bs),
		Subject: p.subject,
		Time:    time.Now(),
	})
	if err != nil {
		return err
	}
	n, err := p.lw.WriteLine(line)
	if err != nil {
		return err
	}
	p.metrics.written(n)
	return nil
}
