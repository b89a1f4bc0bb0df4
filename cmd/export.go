package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/pipeview/internal/export"
	"github.com/spf13/cobra"
)

var (
	expFilters filterFlags
	expFormat  string
	expOutput  string
	expStdout  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered leads as CSV, JSON or XLSX",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		if err := expFilters.apply(s); err != nil {
			return err
		}
		format, err := resolveFormat(expFormat, expOutput)
		if err != nil {
			return err
		}
		rows := s.Filtered()

		if expStdout {
			if format == export.FormatXLSX {
				return fmt.Errorf("xlsx cannot be written to stdout; use --output")
			}
			b, err := export.Render(format, rows)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}

		path := expOutput
		if path == "" {
			path = export.DefaultFilename(format, s.Today())
		}
		if err := export.WriteFile(path, format, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d leads to %s\n", len(rows), path)
		return nil
	},
}

// resolveFormat prefers an explicit --format, then the output extension, then CSV.
func resolveFormat(flag, output string) (export.Format, error) {
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), "."); ext != "" {
		return export.ParseFormat(ext)
	}
	return export.FormatCSV, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	expFilters.register(exportCmd)
	exportCmd.Flags().StringVarP(&expFormat, "format", "f", "", "csv | json | xlsx (default from --output extension, else csv)")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output path (default pipeline_export_<date>.<ext>)")
	exportCmd.Flags().BoolVar(&expStdout, "stdout", false, "print csv/json to stdout instead of writing a file")
}
