package tui

import (
	"fmt"
	"strings"

	"coursectl/pkg/catalog"
	"coursectl/pkg/layout"
	"coursectl/pkg/timetable"

	"github.com/charmbracelet/huh"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const backValue = "__back__"

// runMajorBrowser walks requirement group -> course -> sections for the current major
func runMajorBrowser(s *Session) error {
	major := s.Catalog.Major(s.Major)
	if major == nil || len(major.Categories()) == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("No requirement list loaded for %q.", s.Major)))
		return nil
	}

	for {
		var group int
		var options []huh.Option[int]
		for _, c := range major.Categories() {
			options = append(options, huh.NewOption(fmt.Sprintf("%s (%d)", c, len(major.Groups[c])), int(c)))
		}
		options = append(options, huh.NewOption("Back", -1))

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().
					Title(fmt.Sprintf("%s requirements", s.Major)).
					Options(options...).
					Value(&group),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}
		if group < 0 {
			return nil
		}

		if err := runRequirementGroup(s, catalog.Category(group)); err != nil {
			return err
		}
	}
}

func runRequirementGroup(s *Session, category catalog.Category) error {
	for {
		resolved := s.Catalog.Resolve(s.Major, category)

		var choice string
		var options []huh.Option[string]
		for _, r := range resolved {
			options = append(options, huh.NewOption(resolutionLabel(r, s), r.ID))
		}
		options = append(options, huh.NewOption("Back", backValue))

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(category.String()).
					Description("Courses marked ✗ are not offered this term.").
					Options(options...).
					Value(&choice).
					Height(15),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}
		if choice == backValue {
			return nil
		}

		res := s.Catalog.Lookup(choice)
		if !res.Offered() {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("%s is not offered this term.", res.ID)))
			continue
		}
		if err := runSectionPicker(s, res.Course); err != nil {
			return err
		}
	}
}

// runCatalogBrowser walks department -> course -> sections over the whole catalog
func runCatalogBrowser(s *Session) error {
	for {
		var dept string
		var options []huh.Option[string]
		for _, d := range s.Catalog.Departments() {
			options = append(options, huh.NewOption(fmt.Sprintf("%s (%d courses)", d, len(s.Catalog.Courses(d))), d))
		}
		options = append(options, huh.NewOption("Back", backValue))

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Select a department").
					Options(options...).
					Value(&dept),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}
		if dept == backValue {
			return nil
		}

		if err := runDepartment(s, dept); err != nil {
			return err
		}
	}
}

func runDepartment(s *Session, dept string) error {
	courses := s.Catalog.Courses(dept)
	if len(courses) == 0 {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("No courses loaded for %s.", dept)))
		return nil
	}

	for {
		var choice string
		var options []huh.Option[string]
		for _, c := range courses {
			options = append(options, huh.NewOption(courseLabel(c, s), c.ID))
		}
		options = append(options, huh.NewOption("Back", backValue))

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(dept).
					Options(options...).
					Value(&choice).
					Height(15),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}
		if choice == backValue {
			return nil
		}

		if err := runSectionPicker(s, s.Catalog.Course(choice)); err != nil {
			return err
		}
	}
}

// runSectionPicker lists the sections of a course; choosing one toggles it in the selection
func runSectionPicker(s *Session, course *catalog.Course) error {
	if course == nil {
		return nil
	}

	for {
		var choice string
		var options []huh.Option[string]
		for _, sec := range course.Sections {
			options = append(options, huh.NewOption(sectionLabel(sec, s.Selection.Contains(course, sec)), sec.ID))
		}
		options = append(options, huh.NewOption("Done", backValue))

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("%s - %s (%s credits)", course.ID, course.Name, course.Credits)).
					Description("Enter = add or remove the section from your schedule").
					Options(options...).
					Value(&choice),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}
		if choice == backValue {
			return nil
		}

		sec := course.Section(choice)
		if sec == nil {
			continue
		}
		if s.Selection.Toggle(course, sec) {
			fmt.Println(accentStyle.Render(fmt.Sprintf("+ %s %s added", course.ID, sec.ID)))
			warnConflicts(s, course, sec)
		} else {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("- %s %s removed", course.ID, sec.ID)))
		}
	}
}

// warnConflicts reports selected meetings that overlap the newly added section
func warnConflicts(s *Session, course *catalog.Course, sec *catalog.Section) {
	for _, p := range s.Selection.Picks() {
		if p.Course.ID == course.ID && p.Section.ID == sec.ID {
			continue
		}
		for _, a := range sec.Times {
			for _, b := range p.Section.Times {
				if layout.Overlaps(a, b) {
					fmt.Println(errorStyle.Render(fmt.Sprintf("  overlaps %s %s on %s", p.Course.ID, p.Section.ID, timetable.Summary(b))))
				}
			}
		}
	}
}

var typeTitle = cases.Title(language.English)

// sectionLabel renders a section the way the course list shows it:
// "[x] L01  Lecture - SMITH, Jane  MoWe 10:30AM - 11:50AM @ Rm 101"
func sectionLabel(sec *catalog.Section, selected bool) string {
	mark := "[ ]"
	if selected {
		mark = "[x]"
	}

	parts := []string{fmt.Sprintf("%s %-4s %s", mark, sec.ID, typeTitle.String(sec.TypeLabel()))}
	if sec.Instructor != "" {
		parts = append(parts, "- "+sec.Instructor)
	}

	when := sec.RawTime
	if when == "" {
		when = "TBA"
	}
	if sec.Room != "" {
		when += " @ " + sec.Room
	}
	parts = append(parts, " "+when)

	return strings.Join(parts, " ")
}

// courseLabel shows the course number, name and how many of its sections are selected
func courseLabel(c *catalog.Course, s *Session) string {
	label := fmt.Sprintf("%s: %s", c.ID, c.Name)
	n := 0
	for _, sec := range c.Sections {
		if s.Selection.Contains(c, sec) {
			n++
		}
	}
	if n > 0 {
		label += fmt.Sprintf("  ✓%d", n)
	}
	return label
}

// resolutionLabel shows a required course, or a placeholder when it is not offered
func resolutionLabel(r catalog.Resolution, s *Session) string {
	if !r.Offered() {
		return fmt.Sprintf("✗ %s (not offered this term)", r.ID)
	}
	return courseLabel(r.Course, s)
}
