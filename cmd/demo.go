package cmd

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/pipeview/internal/demo"
	"github.com/KaramelBytes/pipeview/internal/export"
	"github.com/KaramelBytes/pipeview/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	demoCount  int
	demoOutput string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write the reproducible synthetic lead set as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoCount <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		rows := pipeline.Normalize(demo.Generate(demoCount, time.Now()))
		if demoOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), export.CSV(rows))
			return nil
		}
		if err := export.WriteFile(demoOutput, export.FormatCSV, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d demo leads to %s\n", len(rows), demoOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVarP(&demoCount, "count", "n", demo.DefaultCount, "number of leads to generate")
	demoCmd.Flags().StringVarP(&demoOutput, "output", "o", "", "write CSV to this path instead of stdout")
}
