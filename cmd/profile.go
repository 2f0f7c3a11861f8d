package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/okian/vibematch/internal/adapters/catalog"
	"github.com/okian/vibematch/internal/config"
	"github.com/okian/vibematch/internal/domain/engine"
	"github.com/okian/vibematch/internal/domain/match"
	"github.com/okian/vibematch/internal/domain/model"
	"github.com/okian/vibematch/internal/domain/scoring"
	"github.com/spf13/cobra"
)

var errNoLog = errors.New("--log is required")

type profileOutput struct {
	Profile         model.BehavioralProfile `json:"profile"`
	Recommendations []model.Recommendation  `json:"recommendations"`
}

func newProfileCmd() *cobra.Command {
	var (
		logPath     string
		catalogPath string
		contextID   string
		count       int
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile an event log file offline and rank the catalog against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if logPath == "" {
				return errNoLog
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			events, err := readLog(logPath)
			if err != nil {
				return err
			}
			items := catalog.Default()
			if catalogPath != "" {
				if items, err = catalog.LoadFile(catalogPath); err != nil {
					return err
				}
			}
			dwell, err := cfg.DwellOverrides()
			if err != nil {
				return err
			}

			eng := engine.New(
				engine.WithScorer(scoring.New(scoring.WithExpectedDwell(dwell))),
				engine.WithMatcher(match.New(match.WithMetric(cfg.Metric()))),
				engine.WithCatalog(engine.StaticCatalog(items)),
			)
			p, err := eng.BuildProfile(events, contextID)
			if err != nil {
				return err
			}
			out := profileOutput{Profile: p, Recommendations: eng.Recommend(match.FromProfile(p, contextID), count)}
			if out.Recommendations == nil {
				out.Recommendations = []model.Recommendation{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&logPath, "log", "", "JSON array of interaction events")
	f.StringVar(&catalogPath, "catalog", "", "catalog file; the built-in catalog when empty")
	f.StringVar(&contextID, "context", "", "room the session ran in")
	f.IntVar(&count, "count", 5, "number of recommendations")
	return cmd
}

func readLog(path string) ([]model.InteractionEvent, error) {
	b, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	var events []model.InteractionEvent
	if err := json.Unmarshal(b, &events); err != nil {
		return nil, fmt.Errorf("decode log %s: %w", path, err)
	}
	return events, nil
}
