package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the distinct stages in the loaded data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		stages := s.Stages()
		if len(stages) == 0 {
			fmt.Fprintln(out, "(no stages)")
			return nil
		}
		for _, st := range stages {
			fmt.Fprintf(out, "- %s\n", st)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}
