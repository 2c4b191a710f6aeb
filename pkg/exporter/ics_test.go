package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"coursectl/pkg/catalog"
	"coursectl/pkg/config"
	"coursectl/pkg/selection"
)

func testTerm() Term {
	return Term{
		Start:    time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), // a Monday
		Weeks:    15,
		Location: time.FixedZone("CST", 8*60*60),
	}
}

func TestGenerateICS(t *testing.T) {
	course := &catalog.Course{
		ID:   "AIAA 1010",
		Name: "Introduction to Artificial Intelligence",
		Sections: []*catalog.Section{
			{
				ID:         "L01",
				Type:       catalog.Lecture,
				Room:       "Rm 101",
				Instructor: "SMITH, Jane",
				Times:      catalog.ParseTimeString("MoWe 10:30AM - 11:50AM"),
			},
			{ID: "T01", Type: catalog.Tutorial, RawTime: "TBA"},
		},
	}

	s := selection.New()
	s.Toggle(course, course.Sections[0])
	s.Toggle(course, course.Sections[1])

	var buf bytes.Buffer
	if err := GenerateICS(s.Picks(), testTerm(), &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "SUMMARY:AIAA 1010 L01") {
		t.Errorf("Expected ICS to contain course summary, got: \n%s", output)
	}
	if !strings.Contains(output, "LOCATION:Rm 101") {
		t.Errorf("Expected ICS to contain room location")
	}
	if !strings.Contains(output, "RRULE:FREQ=WEEKLY;COUNT=15") {
		t.Errorf("Expected weekly recurrence, got: \n%s", output)
	}

	// Monday 01-Sep-2025 10:30 at UTC+8 is 02:30 UTC, Wednesday is two days later
	if !strings.Contains(output, "DTSTART:20250901T023000Z") {
		t.Errorf("Expected Monday start in UTC, got: \n%s", output)
	}
	if !strings.Contains(output, "DTSTART:20250903T023000Z") {
		t.Errorf("Expected Wednesday start in UTC, got: \n%s", output)
	}

	if n := strings.Count(output, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("expected 2 events (TBA section skipped), got %d", n)
	}
}

func TestGenerateICS_InvalidTerm(t *testing.T) {
	term := testTerm()
	term.Weeks = 0

	var buf bytes.Buffer
	if err := GenerateICS(nil, term, &buf); err == nil {
		t.Errorf("expected error for a zero-week term")
	}
}

func TestFirstOccurrence(t *testing.T) {
	start := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC) // Wednesday

	tests := map[int]int{1: 8, 3: 3, 5: 5, 7: 7}
	for weekday, wantDay := range tests {
		got := firstOccurrence(start, weekday)
		if got.Day() != wantDay {
			t.Errorf("weekday %d: expected September %d, got %s", weekday, wantDay, got.Format("2006-01-02"))
		}
	}
}

func TestTermFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = "UTC"

	term, err := TermFromConfig(cfg)
	if err != nil {
		t.Fatalf("TermFromConfig: %v", err)
	}
	if term.Weeks != cfg.TermWeeks || term.Start.Format("2006-01-02") != cfg.TermStart || term.Location != time.UTC {
		t.Errorf("unexpected term %+v", term)
	}

	cfg.TermStart = "first of September"
	if _, err := TermFromConfig(cfg); err == nil {
		t.Errorf("expected an error for an unparseable start date")
	}
}

func TestAtClock_DSTChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// clocks go back an hour on 26-Oct-2025
	day := time.Date(2025, time.October, 26, 0, 0, 0, 0, loc)
	got := atClock(day, 10*60+30)
	if got.Hour() != 10 || got.Minute() != 30 || got.Day() != 26 {
		t.Errorf("expected 10:30 wall-clock time, got %s", got.Format(time.RFC3339))
	}

	// spring forward on 30-Mar-2025
	day = time.Date(2025, time.March, 30, 0, 0, 0, 0, loc)
	if got := atClock(day, 9*60); got.Hour() != 9 {
		t.Errorf("expected 09:00 wall-clock time, got %s", got.Format(time.RFC3339))
	}
}
