package timetable

import (
	"fmt"
	"hash/fnv"
	"strings"

	"coursectl/pkg/catalog"
	"coursectl/pkg/layout"

	"github.com/charmbracelet/lipgloss"
)

// Options control the terminal week grid
type Options struct {
	StartHour int // first hour shown, default 9
	EndHour   int // hour the grid stops at, default 22
	DayWidth  int // characters per weekday column, default 16
}

func (o Options) withDefaults() Options {
	if o.StartHour <= 0 && o.EndHour <= 0 {
		o.StartHour, o.EndHour = 9, 22
	}
	if o.EndHour <= o.StartHour {
		o.EndHour = o.StartHour + 1
	}
	if o.DayWidth < 4 {
		o.DayWidth = 16
	}
	return o
}

const rowMinutes = 30

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	palette     = []string{"99", "205", "86", "42", "214", "39", "170", "220"}
)

var dayNames = []string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayName returns the short English name of a weekday (1 = Monday)
func DayName(weekday int) string {
	if weekday < 1 || weekday > 7 {
		return "?"
	}
	return dayNames[weekday]
}

// Render draws the arranged week as a text grid in 30 minute rows.
// Each day is split into as many lanes as it has columns; overlapping
// meetings therefore appear side by side. Saturday and Sunday are only
// shown when they hold a meeting.
func Render(days []layout.Day, opts Options) string {
	opts = opts.withDefaults()
	rows := (opts.EndHour - opts.StartHour) * 60 / rowMinutes

	byWeekday := make(map[int]layout.Day)
	for _, d := range days {
		byWeekday[d.Weekday] = d
	}

	shown := []int{1, 2, 3, 4, 5}
	for _, wd := range []int{6, 7} {
		if len(byWeekday[wd].Placements) > 0 {
			shown = append(shown, wd)
		}
	}

	columns := make([][]string, len(shown))
	for i, wd := range shown {
		columns[i] = renderDay(byWeekday[wd], rows, opts)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 6))
	for _, wd := range shown {
		b.WriteString("│")
		b.WriteString(headerStyle.Render(pad(DayName(wd), opts.DayWidth)))
	}
	b.WriteString("\n")

	for r := 0; r < rows; r++ {
		minute := opts.StartHour*60 + r*rowMinutes
		if minute%60 == 0 {
			b.WriteString(axisStyle.Render(pad(catalog.Clock(minute), 6)))
		} else {
			b.WriteString(strings.Repeat(" ", 6))
		}
		for i := range shown {
			b.WriteString("│")
			b.WriteString(columns[i][r])
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderDay returns one rendered line per grid row for a single weekday
func renderDay(day layout.Day, rows int, opts Options) []string {
	width := day.Width
	if width < 1 {
		width = 1
	}
	laneWidth := opts.DayWidth / width
	if laneWidth < 1 {
		laneWidth = 1
	}

	// cells[row][lane]
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, width)
	}

	windowStart := opts.StartHour * 60
	for _, p := range day.Placements {
		first := (p.Slot.StartMin - windowStart) / rowMinutes
		last := (p.Slot.EndMin - windowStart + rowMinutes - 1) / rowMinutes
		if first < 0 {
			first = 0
		}
		if last > rows {
			last = rows
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(courseColor(p.CourseID)))
		lines := []string{
			p.CourseID,
			p.SectionID,
			catalog.Clock(p.Slot.StartMin) + "-" + catalog.Clock(p.Slot.EndMin),
		}
		for r := first; r < last; r++ {
			text := "┃"
			if i := r - first; i < len(lines) {
				text = lines[i]
			}
			cells[r][p.Column] = style.Render(pad(text, laneWidth))
		}
	}

	out := make([]string, rows)
	for r := range cells {
		var line strings.Builder
		used := 0
		for _, cell := range cells[r] {
			if cell == "" {
				cell = strings.Repeat(" ", laneWidth)
			}
			line.WriteString(cell)
			used += laneWidth
		}
		if used < opts.DayWidth {
			line.WriteString(strings.Repeat(" ", opts.DayWidth-used))
		}
		out[r] = line.String()
	}
	return out
}

// pad truncates or right-pads s to exactly n runes
func pad(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s + strings.Repeat(" ", n-len(r))
}

// courseColor picks a stable palette entry for a course
func courseColor(courseID string) string {
	h := fnv.New32a()
	h.Write([]byte(courseID))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Summary describes a meeting in one line, e.g. "Mon 10:30-11:50"
func Summary(slot catalog.TimeSlot) string {
	return fmt.Sprintf("%s %s-%s", DayName(slot.Weekday), catalog.Clock(slot.StartMin), catalog.Clock(slot.EndMin))
}
