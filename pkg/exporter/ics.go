package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"coursectl/pkg/config"
	"coursectl/pkg/selection"

	ics "github.com/arran4/golang-ical"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Term describes when the weekly pattern repeats
type Term struct {
	Start    time.Time // first day of teaching
	Weeks    int
	Location *time.Location
}

// TermFromConfig reads the term dates and timezone from the saved settings
func TermFromConfig(cfg *config.AppConfig) (Term, error) {
	start, err := cfg.TermStartDate()
	if err != nil {
		return Term{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return Term{}, err
	}
	return Term{Start: start, Weeks: cfg.TermWeeks, Location: loc}, nil
}

// GenerateICS writes one weekly recurring event per meeting of every selected
// section. Sections without known meeting times are skipped.
func GenerateICS(picks []selection.Pick, term Term, w io.Writer) error {
	if term.Weeks <= 0 {
		return fmt.Errorf("term must last at least one week, got %d", term.Weeks)
	}
	loc := term.Location
	if loc == nil {
		loc = time.Local
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//coursectl//course schedule//EN")

	title := cases.Title(language.English)
	termStart := time.Date(term.Start.Year(), term.Start.Month(), term.Start.Day(), 0, 0, 0, 0, loc)
	now := time.Now()

	for _, p := range picks {
		for _, t := range p.Section.Times {
			if !t.Valid() {
				continue
			}

			day := firstOccurrence(termStart, t.Weekday)
			startTime := atClock(day, t.StartMin)
			endTime := atClock(day, t.EndMin)

			uid := fmt.Sprintf("%s-%s-%d-%d@coursectl", strings.ReplaceAll(p.Course.ID, " ", ""), p.Section.ID, t.Weekday, t.StartMin)
			event := cal.AddEvent(uid)
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetModifiedAt(now)
			event.SetStartAt(startTime)
			event.SetEndAt(endTime)
			event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", term.Weeks))
			event.SetSummary(fmt.Sprintf("%s %s", p.Course.ID, p.Section.ID))
			event.SetLocation(p.Section.Room)

			description := fmt.Sprintf("%s\nType: %s\nInstructor: %s", p.Course.Name, title.String(p.Section.TypeLabel()), p.Section.Instructor)
			event.SetDescription(description)
		}
	}

	return cal.SerializeTo(w)
}

// atClock returns the wall-clock time min minutes after midnight on day's date
func atClock(day time.Time, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), min/60, min%60, 0, 0, day.Location())
}

// firstOccurrence returns the first date on or after start falling on weekday (1 = Monday)
func firstOccurrence(start time.Time, weekday int) time.Time {
	want := time.Weekday(weekday % 7)
	offset := (int(want) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}
