package tui

import (
	"fmt"
	"os"
	"strings"

	"coursectl/pkg/exporter"
	"coursectl/pkg/layout"
	"coursectl/pkg/selection"
	"coursectl/pkg/timetable"

	"github.com/charmbracelet/huh"
)

// runSelectedTUI lists the selected sections; choosing one removes it
func runSelectedTUI(s *Session) error {
	for {
		picks := s.Selection.Picks()
		if len(picks) == 0 {
			fmt.Println(mutedStyle.Render("No sections selected yet."))
			return nil
		}

		var index int
		var options []huh.Option[int]
		for i, p := range picks {
			options = append(options, huh.NewOption(pickLabel(p), i))
		}
		options = append(options, huh.NewOption("Back", -1))

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().
					Title(fmt.Sprintf("My sections (%d)", len(picks))).
					Description("Enter = remove the section from your schedule").
					Options(options...).
					Value(&index),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}
		if index < 0 {
			return nil
		}

		p := picks[index]
		if s.Selection.RemoveAt(index) {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("- %s %s removed", p.Course.ID, p.Section.ID)))
		}
	}
}

// pickLabel is the one-line description of a selected section
func pickLabel(p selection.Pick) string {
	when := p.Section.RawTime
	if when == "" {
		when = "TBA"
	}
	label := fmt.Sprintf("%s | %s | %s", p.Course.ID, p.Section.ID, when)
	if p.Section.Instructor != "" {
		label += " | " + p.Section.Instructor
	}
	return label
}

// printCalendar draws the week grid for the current selection
func printCalendar(s *Session) {
	fmt.Println(calendarView(s.Selection))
}

func calendarView(set *selection.Set) string {
	var b strings.Builder

	days := set.Layout()
	b.WriteString(accentStyle.Render("📅 My Schedule"))
	b.WriteString("\n")
	b.WriteString(timetable.Render(days, timetable.Options{}))

	for _, c := range layout.Conflicts(days) {
		b.WriteString(errorStyle.Render(fmt.Sprintf("⚠ %s %s overlaps %s %s on %s",
			c[0].CourseID, c[0].SectionID, c[1].CourseID, c[1].SectionID, timetable.DayName(c[0].Slot.Weekday))))
		b.WriteString("\n")
	}

	if unscheduled := set.Unscheduled(); len(unscheduled) > 0 {
		b.WriteString(mutedStyle.Render("Not on the calendar (schedule unknown):"))
		b.WriteString("\n")
		for _, p := range unscheduled {
			b.WriteString(mutedStyle.Render("  " + pickLabel(p)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// runExportTUI writes the selection to an .ics file
func runExportTUI(s *Session) error {
	if s.Selection.Len() == 0 {
		fmt.Println(errorStyle.Render("No sections selected!"))
		return nil
	}

	outputFile := "schedule.ics"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(v string) error {
					if v == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(outputFile, ".ics") {
		outputFile += ".ics"
	}

	term, err := exporter.TermFromConfig(s.Config)
	if err != nil {
		return err
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(s.Selection.Picks(), term, file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported %d sections to %s", s.Selection.Len(), outputFile)))
	return nil
}

// runSwitchMajorTUI changes the major whose requirements are browsed
func runSwitchMajorTUI(s *Session) error {
	var options []huh.Option[string]
	for _, m := range s.Catalog.Majors() {
		opt := huh.NewOption(m, m)
		if m == s.Major {
			opt = opt.Selected(true)
		}
		options = append(options, opt)
	}
	if len(options) == 0 {
		fmt.Println(errorStyle.Render("No majors configured."))
		return nil
	}

	major := s.Major
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select your major").
				Options(options...).
				Value(&major),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	s.Major = major
	return nil
}
