package cmd

import (
	"fmt"
	"strings"

	"coursectl/pkg/config"
	"coursectl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage coursectl configuration",
	Long:  "View or edit your local configuration settings (data directory, term, departments and majors).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.NFlag() == 0 {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI()
		}

		if flags.Changed("data-dir") {
			cfg.DataDir, _ = flags.GetString("data-dir")
		}
		if flags.Changed("term") {
			cfg.Term, _ = flags.GetString("term")
		}
		if flags.Changed("term-start") {
			start, _ := flags.GetString("term-start")
			if err := config.ValidateDate(start); err != nil {
				return err
			}
			cfg.TermStart = start
		}
		if flags.Changed("weeks") {
			weeks, _ := flags.GetInt("weeks")
			if weeks <= 0 {
				return fmt.Errorf("weeks must be positive, got %d", weeks)
			}
			cfg.TermWeeks = weeks
		}
		if flags.Changed("timezone") {
			cfg.Timezone, _ = flags.GetString("timezone")
			if _, err := cfg.Location(); err != nil {
				return err
			}
		}
		if flags.Changed("departments") {
			cfg.Departments, _ = flags.GetStringSlice("departments")
		}
		if flags.Changed("majors") {
			cfg.Majors, _ = flags.GetStringSlice("majors")
		}
		if flags.Changed("major") {
			cfg.DefaultMajor, _ = flags.GetString("major")
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Printf("✅ Configuration saved.\nTerm %s from %s, %d weeks\nDepartments: %s\nMajors: %s (default %s)\n",
			cfg.Term, cfg.TermStart, cfg.TermWeeks, strings.Join(cfg.Departments, ", "), strings.Join(cfg.Majors, ", "), cfg.DefaultMajor)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("data-dir", "", "Directory holding schedule_*.json and require_*.csv")
	configCmd.Flags().String("term", "", "Term code used in the schedule URL, e.g. 2510")
	configCmd.Flags().String("term-start", "", "First day of teaching (YYYY-MM-DD)")
	configCmd.Flags().Int("weeks", 0, "Number of teaching weeks")
	configCmd.Flags().String("timezone", "", "IANA timezone of the campus, e.g. Asia/Shanghai")
	configCmd.Flags().StringSlice("departments", nil, "Departments to load, comma separated")
	configCmd.Flags().StringSlice("majors", nil, "Majors whose requirement lists are loaded, comma separated")
	configCmd.Flags().StringP("major", "m", "", "Major shown at startup")
}
