package tui

import (
	"strings"
	"testing"

	"coursectl/pkg/catalog"
	"coursectl/pkg/config"
	"coursectl/pkg/exporter"
)

func testSession() *Session {
	cat := catalog.New()
	cat.AddDepartment("AIAA", []*catalog.Course{
		{
			ID:      "AIAA 1010",
			Name:    "Introduction to Artificial Intelligence",
			Credits: "3",
			Sections: []*catalog.Section{
				{ID: "L01", Type: catalog.Lecture, Room: "Rm 101", Instructor: "SMITH, Jane", RawTime: "MoWe 10:30AM - 11:50AM", Times: catalog.ParseTimeString("MoWe 10:30AM - 11:50AM")},
				{ID: "T01", Type: catalog.Tutorial, RawTime: "TBA"},
			},
		},
	})
	major := catalog.NewMajor("AI")
	major.Groups[catalog.Fundamental] = []string{"AIAA 1010", "UFUG 2602"}
	cat.AddMajor(major)

	cfg := config.Default()
	cfg.DefaultMajor = "DSBD" // not loaded, falls back to the first major
	return newSession(cfg, cat)
}

func TestNewSession(t *testing.T) {
	s := testSession()
	if s.Major != "AI" {
		t.Errorf("expected fallback to the first loaded major, got %q", s.Major)
	}
	if s.Selection == nil || s.Selection.Len() != 0 {
		t.Errorf("expected an empty selection")
	}
}

func TestSectionLabel(t *testing.T) {
	s := testSession()
	course := s.Catalog.Course("AIAA 1010")

	got := sectionLabel(course.Sections[0], true)
	for _, want := range []string{"[x]", "L01", "Lecture", "SMITH, Jane", "MoWe 10:30AM - 11:50AM @ Rm 101"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in label %q", want, got)
		}
	}

	got = sectionLabel(course.Sections[1], false)
	if !strings.HasPrefix(got, "[ ]") || !strings.Contains(got, "TBA") {
		t.Errorf("unexpected label %q", got)
	}
}

func TestResolutionLabel(t *testing.T) {
	s := testSession()
	res := s.Catalog.Resolve("AI", catalog.Fundamental)

	course := s.Catalog.Course("AIAA 1010")
	s.Selection.Toggle(course, course.Sections[0])

	if got := resolutionLabel(res[0], s); !strings.Contains(got, "AIAA 1010: Introduction") || !strings.Contains(got, "✓1") {
		t.Errorf("unexpected offered label %q", got)
	}
	if got := resolutionLabel(res[1], s); !strings.Contains(got, "not offered this term") {
		t.Errorf("unexpected placeholder %q", got)
	}
}

func TestCalendarView(t *testing.T) {
	s := testSession()
	course := s.Catalog.Course("AIAA 1010")
	s.Selection.Toggle(course, course.Sections[0])
	s.Selection.Toggle(course, course.Sections[1])

	out := calendarView(s.Selection)
	if !strings.Contains(out, "AIAA 1010") {
		t.Errorf("expected the lecture on the grid:\n%s", out)
	}
	if !strings.Contains(out, "schedule unknown") || !strings.Contains(out, "AIAA 1010 | T01 | TBA") {
		t.Errorf("expected the TBA tutorial to be listed separately:\n%s", out)
	}
}

func TestValidateHex(t *testing.T) {
	if err := validateHex("#FF00FF"); err != nil {
		t.Errorf("expected valid hex, got %v", err)
	}
	for _, bad := range []string{"FF00FF", "#FF00F", "#GG0000"} {
		if err := validateHex(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestDescribeConfig(t *testing.T) {
	out := describeConfig(config.Default())
	if !strings.Contains(out, "AIAA, DLED") || !strings.Contains(out, "default AI") {
		t.Errorf("unexpected config description:\n%s", out)
	}
}

func TestReloadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)

	s := testSession()

	saved := config.Default()
	saved.TermStart = "2026-02-02"
	saved.TermWeeks = 12
	saved.Timezone = "UTC"
	if err := config.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig: %v", err)
	}

	term, err := exporter.TermFromConfig(s.Config)
	if err != nil {
		t.Fatalf("TermFromConfig: %v", err)
	}
	if term.Start.Format("2006-01-02") != "2026-02-02" || term.Weeks != 12 {
		t.Errorf("expected the saved term settings, got %s for %d weeks", term.Start.Format("2006-01-02"), term.Weeks)
	}
	if s.Major != "AI" || s.Catalog.Course("AIAA 1010") == nil {
		t.Errorf("expected the major and catalog to be kept")
	}
}
