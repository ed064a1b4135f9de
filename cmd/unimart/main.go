package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unimart/internal/config"
	applog "unimart/internal/log"
)

var rootCmd = &cobra.Command{
	Use:           "unimart",
	Short:         "Campus marketplace for second-hand course material",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listingsCmd)
}

// setup loads configuration and points the event log at out, plus the log file when configured.
func setup(out io.Writer) (config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		return cfg, nil, fmt.Errorf("log_level: %w", err)
	}
	applog.SetOutput(out)
	closer := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[warn] could not open log file %s: %v\n", cfg.LogFile, err)
		} else {
			applog.SetOutput(io.MultiWriter(out, f))
			closer = func() {
				_ = applog.L().Sync()
				_ = f.Close()
			}
		}
	}
	return cfg, closer, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "unimart:", err)
		os.Exit(1)
	}
}
