package main

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/vibematch/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func main() {
	// The custom registry carries its own system gauges.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "vibematch:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the CLI. serve runs when no subcommand is given.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "vibematch",
		Short:         "Interaction-driven profiling and recommendation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogger(cmd, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().Bool("json-logs", false, "emit logs as JSON")

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, newSimulateCmd(), newProfileCmd())
	return root
}

func initLogger(cmd *cobra.Command, w io.Writer) error {
	opts := []logger.Option{logger.WithWriter(w)}
	if asJSON, _ := cmd.Flags().GetBool("json-logs"); asJSON {
		opts = append(opts, logger.WithJSON())
	}
	if err := logger.Init(opts...); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}
