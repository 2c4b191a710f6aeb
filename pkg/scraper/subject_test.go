package scraper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"coursectl/pkg/catalog"
)

const subjectPage = `<html><body>
<h1>AIAA Schedule</h1>
<h2>Notes</h2>
<h2>AIAA 1010 - Introduction to Artificial Intelligence (3 units)</h2>
<table class="sections">
  <tr><th>Section</th><th>Date &amp; Time</th><th>Room</th><th>Instructor</th><th>Quota</th></tr>
  <tr><td>L01 (1001)</td><td>MoWe 10:30AM - 11:50AM</td><td>Rm 101</td><td><a href="#">SMITH, Jane</a></td><td>60</td></tr>
  <tr><td>T01 (1002)</td><td>Fr 03:00PM - 03:50PM</td><td>Rm 202</td><td></td><td>30</td></tr>
  <tr><td>LA1 (1003)</td><td>Th 07:00PM - 09:50PM</td><td>Lab 1</td><td>DOE, John</td><td>30</td></tr>
  <tr><td>R01 (1004)</td><td>TBA</td><td>TBA</td><td>LEE, Ann</td><td>30</td></tr>
  <tr><td>X01 (1005)</td><td>TBA</td><td>TBA</td><td></td><td>30</td></tr>
</table>
<h2>AIAA 2205 - Data Mining (4 units)</h2>
<div><table class="sections">
  <tr><th>Section</th><th>Date &amp; Time</th><th>Room</th><th>Instructor</th><th>Quota</th></tr>
  <tr><td>L1 (2001)</td><td>TuTh 01:30PM - 02:50PM</td><td>Rm 303</td><td>WONG, Kai</td><td>80</td></tr>
</table></div>
</body></html>`

func TestParseSubject(t *testing.T) {
	schedule, err := ParseSubject(strings.NewReader(subjectPage))
	if err != nil {
		t.Fatalf("ParseSubject failed: %v", err)
	}

	if len(schedule) != 2 {
		t.Fatalf("expected 2 courses, got %d: %v", len(schedule), schedule)
	}

	intro := schedule["AIAA 1010 - Introduction to Artificial Intelligence (3 units)"]
	if intro == nil {
		t.Fatalf("expected intro course to be parsed")
	}

	want := []string{"MoWe 10:30AM - 11:50AM", "Rm 101", "SMITH, Jane"}
	if got := intro["Lecture"]["L01 (1001)"]; !reflect.DeepEqual(got, want) {
		t.Errorf("expected lecture details %v, got %v", want, got)
	}
	if _, ok := intro["Tutorial"]["T01 (1002)"]; !ok {
		t.Errorf("expected tutorial T01")
	}
	if _, ok := intro["Lab"]["LA1 (1003)"]; !ok {
		t.Errorf("expected lab LA1")
	}
	if _, ok := intro["Recitation"]["R01 (1004)"]; !ok {
		t.Errorf("expected recitation R01")
	}
	if len(intro) != 4 {
		t.Errorf("expected unknown X01 section to be skipped, got types %v", intro)
	}

	mining := schedule["AIAA 2205 - Data Mining (4 units)"]
	if _, ok := mining["Lecture"]["L1 (2001)"]; !ok {
		t.Errorf("expected nested table to be found for the second course, got %v", mining)
	}
}

func TestParseSubject_FeedsCatalog(t *testing.T) {
	schedule, err := ParseSubject(strings.NewReader(subjectPage))
	if err != nil {
		t.Fatalf("ParseSubject failed: %v", err)
	}

	courses := catalog.BuildDepartment(schedule)
	if len(courses) != 2 || courses[0].ID != "AIAA 1010" || courses[1].Credits != "4" {
		t.Fatalf("unexpected courses %+v", courses)
	}
	if lec := courses[0].Section("L01"); lec == nil || len(lec.Times) != 2 {
		t.Errorf("expected L01 with two meetings, got %+v", lec)
	}
}

func TestClassifySection(t *testing.T) {
	tests := map[string]string{
		"L01 (1001)": labelLecture,
		"LA1 (1003)": labelLab,
		"T2":         labelTutorial,
		"R01":        labelRecitation,
		"TA":         "",
		"L":          "",
		"":           "",
	}
	for label, want := range tests {
		if got := classifySection(label); got != want {
			t.Errorf("classifySection(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestParseSubjects(t *testing.T) {
	page := `<ul>
		<li><a href="subject/AIAA">AIAA</a></li>
		<li><a href="/wcq/cgi-bin/2510/subject/DSAA/">DSAA</a></li>
		<li><a href="subject/AIAA">AIAA again</a></li>
		<li><a href="https://example.com">Elsewhere</a></li>
	</ul>`

	subjects, err := ParseSubjects(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseSubjects failed: %v", err)
	}

	want := []Subject{{Code: "AIAA", Name: "AIAA"}, {Code: "DSAA", Name: "DSAA"}}
	if !reflect.DeepEqual(subjects, want) {
		t.Errorf("expected %v, got %v", want, subjects)
	}
}

func TestClient_FetchSubject_Mock(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(subjectPage))
	}))
	defer server.Close()

	originalBaseURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = originalBaseURL }()

	client := NewClient("")
	schedule, err := client.FetchSubject("AIAA")
	if err != nil {
		t.Fatalf("unexpected error fetching mocked schedule: %v", err)
	}
	if requested != "/2510/subject/AIAA" {
		t.Errorf("unexpected request path %s", requested)
	}
	if len(schedule) != 2 {
		t.Errorf("expected 2 courses, got %d", len(schedule))
	}

	// second fetch is served from the cache
	server.Close()
	cached, err := client.FetchSubject("AIAA")
	if err != nil {
		t.Fatalf("expected cached schedule, got error: %v", err)
	}
	if !reflect.DeepEqual(cached, schedule) {
		t.Errorf("cached schedule differs from fetched one")
	}
}

func TestClient_FetchSubject_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	originalBaseURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = originalBaseURL }()

	if _, err := NewClient("2410").WithoutCache().FetchSubject("NOPE"); err == nil {
		t.Errorf("expected error for a 404 response")
	}
}

func TestSaveSubject(t *testing.T) {
	schedule, _ := ParseSubject(strings.NewReader(subjectPage))
	file := filepath.Join(t.TempDir(), "class", "schedule_AIAA.json")

	if err := SaveSubject(file, schedule); err != nil {
		t.Fatalf("SaveSubject failed: %v", err)
	}

	f, err := os.Open(file)
	if err != nil {
		t.Fatalf("expected schedule file: %v", err)
	}
	defer f.Close()

	decoded, err := catalog.DecodeDepartment(f)
	if err != nil {
		t.Fatalf("saved schedule does not decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, schedule) {
		t.Errorf("saved schedule differs from parsed one")
	}
}
