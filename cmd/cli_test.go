package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const leadsCSV = "lead_id,company,stage,owner,days_in_stage,deal_value,next_action,last_updated\n" +
	"LEAD-1,Acme,Proposal,Alex,10,5000,Call,2024-01-01\n" +
	"LEAD-2,Orbit,Qualified,Sam,2,700,Email,2024-01-02\n"

// resetFlags restores every flag to its default so invocations don't leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args in an isolated HOME.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.yaml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeLeads(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "leads.csv")
	if err := os.WriteFile(p, []byte(leadsCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("output missing %q:\n%s", w, out)
		}
	}
}

func TestCLI_Snapshot(t *testing.T) {
	out, err := runCmd(t, "snapshot", "--source", writeLeads(t))
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	mustContain(t, out, "Leads: 2", "Stalled: 1", "Total value: $5,700", "Top deal: Acme ($5,000)", "Worst stage: Proposal (1)", "| LEAD-1 | Acme |")
	if strings.Contains(out, "demo mode") {
		t.Fatalf("unexpected demo notice:\n%s", out)
	}
}

func TestCLI_SnapshotFiltersAndThreshold(t *testing.T) {
	src := writeLeads(t)
	out, err := runCmd(t, "snapshot", "--source", src, "--threshold", "1", "--search", "orbit")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	mustContain(t, out, "Showing: 1 (1 stalled)", "| LEAD-2 | Orbit |", `search="orbit"`)

	if _, err := runCmd(t, "snapshot", "--source", src, "--stage", "Negotiation"); err == nil {
		t.Fatalf("expected unknown stage error")
	}

	out, err = runCmd(t, "snapshot", "--source", src, "--lead", "LEAD-2")
	if err != nil {
		t.Fatalf("snapshot --lead: %v", err)
	}
	mustContain(t, out, "[DEAL] Orbit", "Qualified • $700 • Sam")
}

func TestCLI_SnapshotFallsBackToDemo(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")
	out, err := runCmd(t, "snapshot", "--source", missing)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	mustContain(t, out, "Data: synthetic (demo mode)", "Note: source unavailable", "Leads: 88")

	if _, err := runCmd(t, "snapshot", "--source", missing, "--no-fallback"); err == nil {
		t.Fatalf("expected error with --no-fallback")
	}
}

func TestCLI_Export(t *testing.T) {
	src := writeLeads(t)
	dest := filepath.Join(t.TempDir(), "out.json")
	out, err := runCmd(t, "export", "--source", src, "-o", dest, "--stage", "Qualified")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	mustContain(t, out, "✓ Exported 1 leads")
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	mustContain(t, string(b), `"lead_id": "LEAD-2"`, `"deal_value": 700`)

	out, err = runCmd(t, "export", "--source", src, "--stdout")
	if err != nil {
		t.Fatalf("export --stdout: %v", err)
	}
	mustContain(t, out, "lead_id,company,stage", "LEAD-1,Acme,Proposal,Alex,10,5000,Call,2024-01-01")

	if _, err := runCmd(t, "export", "--source", src, "--stdout", "-f", "xlsx"); err == nil {
		t.Fatalf("expected xlsx stdout error")
	}
}

func TestCLI_Update(t *testing.T) {
	src := writeLeads(t)
	out, err := runCmd(t, "update", "LEAD-1", "--source", src, "--contacted")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	mustContain(t, out, "- Stage: Contacted", "Stalled: 1")

	out, err = runCmd(t, "update", "LEAD-2", "--source", src, "--nudge=10")
	if err != nil {
		t.Fatalf("update --nudge: %v", err)
	}
	mustContain(t, out, "- Days in stage: 12", "Stalled: 2")

	out, err = runCmd(t, "update", "LEAD-2", "--source", src, "--nudge")
	if err != nil {
		t.Fatalf("update bare --nudge: %v", err)
	}
	mustContain(t, out, "- Days in stage: 5", "Stalled: 1")

	out, err = runCmd(t, "update", "LEAD-1", "--source", src, "--close-lost")
	if err != nil {
		t.Fatalf("update --close-lost: %v", err)
	}
	mustContain(t, out, "- Stage: Closed Lost", "- Value: $0", "Stalled: 0")

	if _, err := runCmd(t, "update", "LEAD-404", "--source", src, "--contacted"); err == nil {
		t.Fatalf("expected not found error")
	}
	if _, err := runCmd(t, "update", "LEAD-1", "--source", src); err == nil {
		t.Fatalf("expected nothing-to-update error")
	}
}

func TestCLI_StagesAndDemo(t *testing.T) {
	out, err := runCmd(t, "stages", "--source", writeLeads(t))
	if err != nil {
		t.Fatalf("stages: %v", err)
	}
	mustContain(t, out, "- Proposal\n- Qualified\n")

	out, err = runCmd(t, "demo", "-n", "4")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d:\n%s", len(lines), out)
	}
	mustContain(t, out, "LEAD-5001,Northwind,Proposal")
}

func TestCLI_ConfigSetShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "set", "stalled_threshold", "14", "--config", cfgPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config set: %v", err)
	}
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"config", "show", "--config", cfgPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	mustContain(t, out.String(), "Saved config", "stalled_threshold: 14")

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"config", "set", "log_format", "xml", "--config", cfgPath})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected invalid log_format error")
	}
}
