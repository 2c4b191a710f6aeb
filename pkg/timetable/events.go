package timetable

import (
	"fmt"

	"coursectl/pkg/selection"
)

// Event is a weekly recurring calendar event in the shape FullCalendar expects
type Event struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	DaysOfWeek    []int        `json:"daysOfWeek"`
	StartTime     string       `json:"startTime"`
	EndTime       string       `json:"endTime"`
	ExtendedProps EventDetails `json:"extendedProps"`
}

// EventDetails carries the section information shown when an event is opened
type EventDetails struct {
	Room       string `json:"room"`
	Instructor string `json:"instructor"`
	Type       string `json:"type"`
}

// Events converts the selection into one recurring event per meeting.
// Days of week follow the JavaScript convention (Sunday = 0).
func Events(picks []selection.Pick) []Event {
	events := []Event{}
	for _, p := range picks {
		for _, t := range p.Section.Times {
			if !t.Valid() {
				continue
			}
			day := t.Weekday % 7
			events = append(events, Event{
				ID:         fmt.Sprintf("%s|%s|%d|%d-%d", p.Course.ID, p.Section.ID, day, t.StartMin, t.EndMin),
				Title:      fmt.Sprintf("%s %s", p.Course.ID, p.Section.ID),
				DaysOfWeek: []int{day},
				StartTime:  clockSeconds(t.StartMin),
				EndTime:    clockSeconds(t.EndMin),
				ExtendedProps: EventDetails{
					Room:       p.Section.Room,
					Instructor: p.Section.Instructor,
					Type:       p.Section.TypeLabel(),
				},
			})
		}
	}
	return events
}

func clockSeconds(min int) string {
	return fmt.Sprintf("%02d:%02d:00", min/60, min%60)
}
