package web

import (
	"fmt"
	"hash/fnv"
	"html/template"

	"coursectl/pkg/catalog"
	"coursectl/pkg/layout"
	"coursectl/pkg/selection"
	"coursectl/pkg/timetable"
)

// the calendar spans 09:00 to 22:00
const (
	calendarStart = 9 * 60
	calendarEnd   = 22 * 60
)

var templateFuncs = template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.3f%%", v) },
}

type pageData struct {
	Major       string
	Majors      []string
	Groups      []groupView
	Departments []departmentView
	Days        []dayView
	Hours       []hourMark
	Selected    []selectedView
	Unscheduled []string
	Conflicts   []string
}

type groupView struct {
	Title   string
	Courses []courseView
}

type departmentView struct {
	Code    string
	Courses []courseView
}

type courseView struct {
	ID       string
	Name     string
	Credits  string
	Offered  bool
	Sections []sectionView
}

type sectionView struct {
	CourseID   string
	ID         string
	Type       string
	Instructor string
	Time       string
	Room       string
	Selected   bool
}

type dayView struct {
	Name   string
	Blocks []blockView
}

// blockView is positioned in percent of its day column
type blockView struct {
	CourseID  string
	SectionID string
	Title     string
	Time      string
	Top       float64
	Height    float64
	Left      float64
	Width     float64
	Color     template.CSS
}

type hourMark struct {
	Label string
	Top   float64
}

type selectedView struct {
	Index int
	Label string
}

func (s *Server) page(ws *workspace) pageData {
	data := pageData{
		Major:  ws.major,
		Majors: s.catalog.Majors(),
	}

	if m := s.catalog.Major(ws.major); m != nil {
		for _, c := range m.Categories() {
			g := groupView{Title: c.String()}
			for _, r := range s.catalog.Resolve(ws.major, c) {
				if !r.Offered() {
					g.Courses = append(g.Courses, courseView{ID: r.ID})
					continue
				}
				g.Courses = append(g.Courses, newCourseView(r.Course, ws.selection))
			}
			data.Groups = append(data.Groups, g)
		}
	}

	for _, d := range s.catalog.Departments() {
		dv := departmentView{Code: d}
		for _, c := range s.catalog.Courses(d) {
			dv.Courses = append(dv.Courses, newCourseView(c, ws.selection))
		}
		data.Departments = append(data.Departments, dv)
	}

	days := ws.selection.Layout()
	data.Days = calendarDays(days)
	for h := calendarStart; h < calendarEnd; h += 60 {
		data.Hours = append(data.Hours, hourMark{Label: catalog.Clock(h), Top: offset(h)})
	}
	for _, c := range layout.Conflicts(days) {
		data.Conflicts = append(data.Conflicts, fmt.Sprintf("%s %s overlaps %s %s on %s",
			c[0].CourseID, c[0].SectionID, c[1].CourseID, c[1].SectionID, timetable.DayName(c[0].Slot.Weekday)))
	}

	for i, p := range ws.selection.Picks() {
		data.Selected = append(data.Selected, selectedView{Index: i, Label: pickLabel(p)})
	}
	for _, p := range ws.selection.Unscheduled() {
		data.Unscheduled = append(data.Unscheduled, pickLabel(p))
	}

	return data
}

func newCourseView(c *catalog.Course, set *selection.Set) courseView {
	cv := courseView{ID: c.ID, Name: c.Name, Credits: c.Credits, Offered: true}
	for _, sec := range c.Sections {
		when := sec.RawTime
		if when == "" {
			when = "TBA"
		}
		cv.Sections = append(cv.Sections, sectionView{
			CourseID:   c.ID,
			ID:         sec.ID,
			Type:       sec.TypeLabel(),
			Instructor: sec.Instructor,
			Time:       when,
			Room:       sec.Room,
			Selected:   set.Contains(c, sec),
		})
	}
	return cv
}

// calendarDays lays the week out Monday to Friday, adding the weekend
// only when something is scheduled on it
func calendarDays(days []layout.Day) []dayView {
	byWeekday := make(map[int]layout.Day)
	for _, d := range days {
		byWeekday[d.Weekday] = d
	}

	var out []dayView
	for wd := 1; wd <= 7; wd++ {
		d, ok := byWeekday[wd]
		if !ok && wd > 5 {
			continue
		}

		dv := dayView{Name: timetable.DayName(wd)}
		for _, p := range d.Placements {
			width := 100 / float64(d.Width)
			dv.Blocks = append(dv.Blocks, blockView{
				CourseID:  p.CourseID,
				SectionID: p.SectionID,
				Title:     fmt.Sprintf("%s %s", p.CourseID, p.SectionID),
				Time:      fmt.Sprintf("%s-%s", catalog.Clock(p.Slot.StartMin), catalog.Clock(p.Slot.EndMin)),
				Top:       offset(p.Slot.StartMin),
				Height:    offset(p.Slot.EndMin) - offset(p.Slot.StartMin),
				Left:      float64(p.Column) * width,
				Width:     width,
				Color:     blockColor(p.CourseID),
			})
		}
		out = append(out, dv)
	}
	return out
}

// offset converts minutes since midnight into a percentage of the calendar height
func offset(min int) float64 {
	if min < calendarStart {
		min = calendarStart
	}
	if min > calendarEnd {
		min = calendarEnd
	}
	return float64(min-calendarStart) * 100 / float64(calendarEnd-calendarStart)
}

// blockColor gives each course a stable pastel hue
func blockColor(courseID string) template.CSS {
	h := fnv.New32a()
	h.Write([]byte(courseID))
	return template.CSS(fmt.Sprintf("hsl(%d, 60%%, 75%%)", h.Sum32()%360))
}

func pickLabel(p selection.Pick) string {
	when := p.Section.RawTime
	if when == "" {
		when = "TBA"
	}
	return fmt.Sprintf("%s %s (%s) %s", p.Course.ID, p.Section.ID, p.Section.TypeLabel(), when)
}
