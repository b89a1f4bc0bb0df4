package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/pipeview/internal/pipeline"
	"github.com/KaramelBytes/pipeview/internal/report"
	"github.com/KaramelBytes/pipeview/internal/session"
	"github.com/spf13/cobra"
)

// filterFlags are shared by commands that work on the filtered set.
type filterFlags struct {
	search string
	stage  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "case-insensitive text filter over id, company, stage, owner, next action")
	cmd.Flags().StringVar(&f.stage, "stage", "", "exact stage to keep (default all)")
}

func (f *filterFlags) apply(s *session.Session) error {
	s.SetQuery(f.search)
	if f.stage == "" {
		return nil
	}
	if !s.SetStage(f.stage) {
		return fmt.Errorf("unknown stage %q (available: %s)", f.stage, strings.Join(s.Stages(), ", "))
	}
	return nil
}

// openSession builds a session from the effective config and runs the first load.
func openSession(ctx context.Context) (*session.Session, session.LoadResult, error) {
	if cfg == nil {
		loadConfig()
	}
	s := session.New(session.Options{
		Source:      cfg.Source,
		Charset:     cfg.Encoding,
		DemoCount:   cfg.DemoCount,
		Demo:        flagDemo,
		NoFallback:  flagNoFallback,
		HTTPTimeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
	})
	s.SetThreshold(cfg.StalledThreshold)
	res, err := s.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoData) {
			return nil, res, fmt.Errorf("could not establish any lead data: %w", err)
		}
		return nil, res, err
	}
	return s, res, nil
}

func projectOptions() pipeline.ProjectOptions {
	return pipeline.ProjectOptions{PageSize: cfg.PageSize, Currency: cfg.CurrencySymbol}
}

func reportOptions(s *session.Session, res session.LoadResult) report.Options {
	opt := report.Options{AsOf: s.Today(), Currency: cfg.CurrencySymbol, Demo: s.DemoMode()}
	if res.Outcome == session.FellBack && res.Reason != nil {
		opt.Notice = fmt.Sprintf("source unavailable (%v); showing demo data", res.Reason)
	}
	return opt
}
