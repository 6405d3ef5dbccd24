package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/mimuret/nativelog/internal/format"
	"github.com/mimuret/nativelog/internal/output"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := newRootCmd(viper.GetViper()).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile, envFile string
	rootCmd := &cobra.Command{
		Use:           "nativelog",
		Short:         "Write messages to stdout, one line each",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile, envFile); err != nil {
				return err
			}
			return setLogLevel(v)
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.nativelog.toml)")
	pf.StringVar(&envFile, "env-file", "", "load environment variables from file")
	pf.BoolP("dry-run", "d", false, "discard output (default false)")
	pf.StringP("loglevel", "l", "info", "log level debug,info,warn,error,fatal")
	pf.StringP("template", "t", format.DefaultTemplate, "for line output go-template")
	pf.StringP("output", "o", "line", "line,json")
	pf.StringP("filename", "f", "", "output path, strftime format (default is stdout)")
	pf.String("rotate-exec", "", "exec command with filename when file is rotated")
	pf.String("metrics-addr", "", "listen address for /metrics (default disabled)")
	for _, name := range []string{"dry-run", "loglevel", "template", "output", "filename", "rotate-exec", "metrics-addr"} {
		v.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.AddCommand(newPrintCmd(v), newSubscribeCmd(v))
	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file `%s`: %w", envFile, err)
		}
	}
	v.SetConfigType("toml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(".nativelog")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		log.Info("Using config file:", v.ConfigFileUsed())
	} else if cfgFile != "" {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func setLogLevel(v *viper.Viper) error {
	switch v.GetString("loglevel") {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	default:
		return fmt.Errorf("not support loglevel `%s`", v.GetString("loglevel"))
	}
	return nil
}

func newSink(v *viper.Viper) (io.WriteCloser, error) {
	if v.GetBool("dry-run") {
		log.WithFields(log.Fields{
			"type": "nothing",
		}).Info("prepare output")
		return output.NewNothing(), nil
	}
	if v.GetString("filename") != "" {
		f, err := output.NewFileOutput(log.StandardLogger(), v.GetString("filename"), v.GetString("rotate-exec"))
		if err != nil {
			return nil, fmt.Errorf("failed to create file outputer: %w", err)
		}
		log.WithFields(log.Fields{
			"type":        "file",
			"filename":    v.GetString("filename"),
			"rotate-exec": v.GetString("rotate-exec"),
		}).Info("prepare output")
		return f, nil
	}
	log.WithFields(log.Fields{
		"type": "stdout",
	}).Info("prepare output")
	return output.NewStdout(), nil
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.DebugLevel)
}
