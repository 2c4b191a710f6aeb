package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"coursectl/pkg/catalog"
	"coursectl/pkg/config"
	"coursectl/pkg/exporter"
	"coursectl/pkg/layout"
	"coursectl/pkg/selection"
	"coursectl/pkg/timetable"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Lay out a set of sections without the interactive TUI",
	Long: `Print the weekly timetable for the given sections, report clashes and
optionally export the week to an ICS file.

Examples:
  coursectl plan -p "AIAA 1010:L01" -p "AIAA 1010:T01" -p "UFUG 2602:L02"
  coursectl plan -p "AIAA 1010:L01" -o schedule.ics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		refs, _ := cmd.Flags().GetStringArray("pick")
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		cat, err := catalog.Load(cfg.DataDir, cfg.Departments, nil)
		if cat == nil {
			return err
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}

		set, err := buildSelection(cat, refs)
		if err != nil {
			return err
		}

		days := set.Layout()
		fmt.Print(timetable.Render(days, timetable.Options{}))
		for _, c := range layout.Conflicts(days) {
			fmt.Printf("conflict: %s %s overlaps %s %s on %s\n",
				c[0].CourseID, c[0].SectionID, c[1].CourseID, c[1].SectionID, timetable.DayName(c[0].Slot.Weekday))
		}
		for _, p := range set.Unscheduled() {
			fmt.Printf("not scheduled: %s %s (%s)\n", p.Course.ID, p.Section.ID, p.Section.RawTime)
		}

		if output == "" {
			return nil
		}

		term, err := exporter.TermFromConfig(cfg)
		if err != nil {
			return err
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(set.Picks(), term, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d sections to %s\n", set.Len(), output)
		return nil
	},
}

// parsePick splits "AIAA 1010:L01" into course and section ids
func parsePick(ref string) (string, string, error) {
	course, section, ok := strings.Cut(ref, ":")
	course, section = strings.TrimSpace(course), strings.TrimSpace(section)
	if !ok || course == "" || section == "" {
		return "", "", fmt.Errorf("invalid pick %q, want COURSE:SECTION (e.g. \"AIAA 1010:L01\")", ref)
	}
	return course, section, nil
}

func buildSelection(cat *catalog.Catalog, refs []string) (*selection.Set, error) {
	set := selection.New()
	var errs []error
	for _, ref := range refs {
		courseID, sectionID, err := parsePick(ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		course := cat.Course(courseID)
		if course == nil {
			errs = append(errs, fmt.Errorf("course %s is not offered this term", courseID))
			continue
		}
		section := course.Section(sectionID)
		if section == nil {
			errs = append(errs, fmt.Errorf("course %s has no section %s", courseID, sectionID))
			continue
		}
		if !set.Contains(course, section) {
			set.Toggle(course, section)
		}
	}
	return set, errors.Join(errs...)
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringArrayP("pick", "p", nil, "Section to include as COURSE:SECTION (repeatable)")
	planCmd.Flags().StringP("output", "o", "", "Also export the week to this .ics file")
	planCmd.MarkFlagRequired("pick")
}
