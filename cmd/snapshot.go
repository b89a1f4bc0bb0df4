package cmd

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/pipeview/internal/report"
	"github.com/KaramelBytes/pipeview/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	snapFilters filterFlags
	snapLead    string
	snapWatch   bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show pipeline totals and the stalled deals table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if snapWatch && flagDemo {
			return fmt.Errorf("--watch cannot be combined with --demo")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, res, err := openSession(ctx)
		if err != nil {
			return err
		}
		if err := snapFilters.apply(s); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := renderSnapshot(out, s, res); err != nil {
			return err
		}
		if !snapWatch {
			return nil
		}
		return s.Watch(ctx, func(res session.LoadResult, err error) {
			if err != nil {
				zap.L().Warn("reload failed", zap.Error(err))
				return
			}
			fmt.Fprintln(out)
			_ = renderSnapshot(out, s, res)
		})
	},
}

func renderSnapshot(w io.Writer, s *session.Session, res session.LoadResult) error {
	if snapLead != "" {
		rec, ok := s.Lookup(snapLead)
		if !ok {
			return fmt.Errorf("lead %q not found", snapLead)
		}
		_, err := fmt.Fprint(w, report.Detail(rec, cfg.CurrencySymbol))
		return err
	}
	snap := s.Snapshot(projectOptions())
	_, err := fmt.Fprint(w, report.Markdown(snap, reportOptions(s, res)))
	return err
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapFilters.register(snapshotCmd)
	snapshotCmd.Flags().StringVar(&snapLead, "lead", "", "show the detail view of a single lead")
	snapshotCmd.Flags().BoolVar(&snapWatch, "watch", false, "re-render whenever the source file changes")
}

