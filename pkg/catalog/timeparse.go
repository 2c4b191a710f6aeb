package catalog

import (
	"regexp"
	"strconv"
)

var (
	weekdayPattern   = regexp.MustCompile(`Mo|Tu|We|Th|Fr|Sa|Su`)
	clockTimePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})([AP]M)`)
)

var weekdays = map[string]int{
	"Mo": 1, "Tu": 2, "We": 3, "Th": 4, "Fr": 5, "Sa": 6, "Su": 7,
}

// ParseTimeString converts a schedule time string into weekly slots.
//
// Supported shapes include:
//
//	"MoWeFr 10:00AM - 11:00AM"
//	"Fr 09:00AM - 11:50AM"
//	"01-SEP-2025 - 05-SEP-2025Tu 09:00AM - 09:50AM"
//
// Anything it cannot read (TBA, a missing end time, an end before the start, ...)
// yields nil rather than an error. A weekday repeated in s gives a single slot.
func ParseTimeString(s string) []TimeSlot {
	days := weekdayPattern.FindAllString(s, -1)
	if len(days) == 0 {
		return nil
	}

	times := clockTimePattern.FindAllStringSubmatch(s, -1)
	if len(times) != 2 {
		return nil
	}

	start, ok := clockMinutes(times[0])
	if !ok {
		return nil
	}
	end, ok := clockMinutes(times[1])
	if !ok || start >= end {
		return nil
	}

	slots := make([]TimeSlot, 0, len(days))
	seen := make(map[string]bool)
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		slots = append(slots, TimeSlot{
			Weekday:  weekdays[d],
			StartMin: start,
			EndMin:   end,
		})
	}
	return slots
}

// clockMinutes turns a matched "H:MM" + AM/PM triple into minutes since midnight
func clockMinutes(m []string) (int, bool) {
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute > 59 {
		return 0, false
	}

	total := hour%12*60 + minute
	if m[3] == "PM" {
		total += 12 * 60
	}
	return total, true
}
