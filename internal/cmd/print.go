package cmd

import (
	"fmt"
	"time"

	"github.com/mimuret/nativelog/internal/format"
	"github.com/mimuret/nativelog/internal/output"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPrintCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "print MESSAGE...",
		Short: "Write each argument as one line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.New(v.GetString("output"), v.GetString("template"))
			if err != nil {
				return err
			}
			sink, err := newSink(v)
			if err != nil {
				return err
			}
			defer sink.Close()
			lw := output.NewLineWriter(sink)
			for _, arg := range args {
				line, err := f.Format(&format.Record{Message: arg, Time: time.Now()})
				if err != nil {
					return fmt.Errorf("failed to format: %w", err)
				}
				n, err := lw.WriteLine(line)
				if err != nil {
					return fmt.Errorf("failed to write line: %w", err)
				}
				log.WithField("bytes", n).Debug("line written")
			}
			return nil
		},
	}
}
