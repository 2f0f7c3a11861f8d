package main

import (
	"github.com/goccy/go-json"
	"github.com/okian/vibematch/internal/simulate"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cfg := simulate.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive seeded synthetic sessions against a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := simulate.NewRunner(cfg).Run(cmd.Context())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(st); encErr != nil && err == nil {
				err = encErr
			}
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the service")
	f.IntVar(&cfg.Sessions, "sessions", cfg.Sessions, "number of sessions")
	f.IntVar(&cfg.Events, "events", cfg.Events, "events per session")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent sessions")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "generator seed")
	f.IntVar(&cfg.Count, "count", cfg.Count, "recommendations per session")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	f.BoolVar(&cfg.Replay, "replay", cfg.Replay, "replay the first event of each session")
	return cmd
}
