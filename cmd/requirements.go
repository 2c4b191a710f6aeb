package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"coursectl/pkg/catalog"
	"coursectl/pkg/config"
	"coursectl/pkg/requirements"

	"github.com/spf13/cobra"
)

var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "Convert a major's requirement text into require_<MAJOR>.csv",
	Long: `Read the plain text of a programme's curriculum (as copied from the
handbook) and write the course list as a requirement CSV in the data
directory, grouped by category and sorted by course number.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		major, _ := cmd.Flags().GetString("major")
		input, _ := cmd.Flags().GetString("input")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		in, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open requirement text: %w", err)
		}
		defer in.Close()

		rows, err := requirements.Extract(in)
		if err != nil {
			return fmt.Errorf("failed to read requirement text: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("no course lines found in %s", input)
		}
		requirements.Sort(rows)

		output := catalog.RequirementPath(cfg.DataDir, major)
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			return fmt.Errorf("could not create data directory: %w", err)
		}
		out, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()

		if err := requirements.WriteCSV(out, rows); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}

		fmt.Printf("Wrote %d courses for %s to %s\n", len(rows), major, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(requirementsCmd)
	requirementsCmd.Flags().StringP("major", "m", "", "Major code, e.g. AI")
	requirementsCmd.Flags().StringP("input", "i", "", "Text file holding the curriculum")
	requirementsCmd.MarkFlagRequired("major")
	requirementsCmd.MarkFlagRequired("input")
}
