package cmd

import (
	"fmt"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/KaramelBytes/pipeview/internal/report"
	"github.com/KaramelBytes/pipeview/internal/session"
	"github.com/spf13/cobra"
)

var (
	updStage      string
	updOwner      string
	updCompany    string
	updNextAction string
	updDays       string
	updValue      string
	updContacted  bool
	updNudge      float64
	updCloseLost  bool
	updFilters    filterFlags
)

var updateCmd = &cobra.Command{
	Use:   "update <lead-id>",
	Short: "Edit one lead in memory and show the recomputed snapshot",
	Long: `update applies field edits and quick actions to a single lead, stamps its
last_updated with today's date and prints the lead and the recomputed snapshot.
Changes are held in memory only and are not written back to the source.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		s, res, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		if !s.Select(id) {
			return fmt.Errorf("lead %q not found", id)
		}

		p := buildPatch(cmd)
		applied := 0
		if !p.Empty() {
			s.ApplyPatch(id, p)
			applied++
		}
		if updContacted {
			s.MarkContacted()
			applied++
		}
		if cmd.Flags().Changed("next-action") {
			s.SaveNextAction(updNextAction)
			applied++
		}
		if cmd.Flags().Changed("nudge") {
			s.Nudge(updNudge)
			applied++
		}
		if updCloseLost {
			s.CloseLost()
			applied++
		}
		if applied == 0 {
			return fmt.Errorf("nothing to update: pass a field flag or a quick action")
		}
		if err := updFilters.apply(s); err != nil {
			return err
		}

		rec, _ := s.Selected()
		out := cmd.OutOrStdout()
		fmt.Fprint(out, report.Detail(rec, cfg.CurrencySymbol))
		fmt.Fprintln(out)
		fmt.Fprint(out, report.Markdown(s.Snapshot(projectOptions()), reportOptions(s, res)))
		return nil
	},
}

func buildPatch(cmd *cobra.Command) lead.Patch {
	var p lead.Patch
	f := cmd.Flags()
	if f.Changed("set-stage") {
		p.Stage = lead.String(updStage)
	}
	if f.Changed("owner") {
		p.Owner = lead.String(updOwner)
	}
	if f.Changed("company") {
		p.Company = lead.String(updCompany)
	}
	if f.Changed("days") {
		p.DaysInStage = lead.String(updDays)
	}
	if f.Changed("value") {
		p.DealValue = lead.String(updValue)
	}
	return p
}

func init() {
	rootCmd.AddCommand(updateCmd)
	f := updateCmd.Flags()
	f.StringVar(&updStage, "set-stage", "", "new stage")
	f.StringVar(&updOwner, "owner", "", "new owner")
	f.StringVar(&updCompany, "company", "", "new company name")
	f.StringVar(&updDays, "days", "", "new days_in_stage")
	f.StringVar(&updValue, "value", "", "new deal_value")
	f.StringVar(&updNextAction, "next-action", "", "new next action (blank stores a dash)")
	f.BoolVar(&updContacted, "contacted", false, "quick action: mark as Contacted")
	f.Float64Var(&updNudge, "nudge", session.DefaultNudgeDays, "quick action: add days to days_in_stage (bare --nudge adds 3)")
	f.Lookup("nudge").NoOptDefVal = lead.FormatNum(session.DefaultNudgeDays)
	f.BoolVar(&updCloseLost, "close-lost", false, "quick action: close as lost and zero the value")
	updFilters.register(updateCmd)
}
