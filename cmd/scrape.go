package cmd

import (
	"errors"
	"fmt"

	"coursectl/pkg/catalog"
	"coursectl/pkg/config"
	"coursectl/pkg/scraper"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Download department schedules into the data directory",
	Long: `Download the class schedule of each configured department and save it
as schedule_<DEPT>.json in the data directory.

Examples:
  # Download every configured department
  coursectl scrape

  # Download two departments, bypassing the local cache
  coursectl scrape -d AIAA -d UFUG --no-cache`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		departments, _ := cmd.Flags().GetStringSlice("department")
		if len(departments) == 0 {
			departments = cfg.Departments
		}
		noCache, _ := cmd.Flags().GetBool("no-cache")

		client := scraper.NewClient(cfg.Term)
		if noCache {
			client = client.WithoutCache()
		}

		var errs []error
		for _, dept := range departments {
			var schedule catalog.RawDepartment

			_ = spinner.New().
				Title(fmt.Sprintf("Fetching %s for term %s...", dept, client.Term())).
				Action(func() {
					schedule, err = client.FetchSubject(dept)
				}).
				Run()

			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", dept, err))
				continue
			}

			file := catalog.SchedulePath(cfg.DataDir, dept)
			if err := scraper.SaveSubject(file, schedule); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", dept, err))
				continue
			}
			fmt.Printf("Saved %d courses to %s\n", len(schedule), file)
		}

		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().StringSliceP("department", "d", nil, "Department code to download (repeatable, defaults to the configured list)")
	scrapeCmd.Flags().Bool("no-cache", false, "Ignore cached responses and fetch fresh data")
}
