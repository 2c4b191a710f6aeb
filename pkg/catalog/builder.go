package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// RawDepartment is the on-disk shape of a scraped department schedule:
// course header -> section type label -> section id -> [time, room, instructor?]
type RawDepartment map[string]map[string]map[string][]string

var (
	creditSuffixPattern = regexp.MustCompile(`(?i)\(\s*(\d+)\s*units?\s*\)\s*$`)
	unitsSuffixPattern  = regexp.MustCompile(`(?i)\s*\(\s*\d+(?:-\d+)?\s*units?\s*\)\s*$`)
)

const (
	courseIDWidth   = 9  // "AIAA 1010"
	courseNameStart = 12 // after "AIAA 1010 - "
	sectionIDWidth  = 4
	defaultCredits  = "1"
)

// BuildCourse assembles a course from a schedule header such as
// "AIAA 1010 - Introduction to AI (3 units)" and its raw section table.
func BuildCourse(header string, raw map[string]map[string][]string) *Course {
	course := &Course{
		ID:      strings.TrimSpace(prefix(header, courseIDWidth)),
		Credits: creditCount(header),
	}
	if r := []rune(header); len(r) > courseNameStart {
		course.Name = strings.TrimSpace(unitsSuffixPattern.ReplaceAllString(string(r[courseNameStart:]), ""))
	}
	course.Department = prefix(course.ID, 4)

	for label, sections := range raw {
		secType := ParseSectionType(label)
		for rawID, details := range sections {
			course.Sections = append(course.Sections, buildSection(rawID, label, secType, details))
		}
	}

	sort.SliceStable(course.Sections, func(i, j int) bool {
		a, b := course.Sections[i], course.Sections[j]
		if a.Type != b.Type {
			return sectionOrder(a.Type) < sectionOrder(b.Type)
		}
		return a.ID < b.ID
	})

	return course
}

func buildSection(rawID, label string, secType SectionType, details []string) *Section {
	sec := &Section{
		ID:    strings.TrimSpace(prefix(rawID, sectionIDWidth)),
		Type:  secType,
		Label: strings.ToLower(strings.TrimSpace(label)),
	}
	if len(details) > 0 {
		sec.RawTime = details[0]
		sec.Times = ParseTimeString(details[0])
	}
	if len(details) > 1 {
		sec.Room = details[1]
	}
	if len(details) > 2 {
		sec.Instructor = details[2]
	}
	return sec
}

// creditCount reads the credit value from the "(N units)" suffix of a header.
// Headers without it fall back to the digit 8 characters from the end, then to "1".
func creditCount(header string) string {
	if m := creditSuffixPattern.FindStringSubmatch(header); m != nil {
		return m[1]
	}
	if len(header) >= 8 {
		if ch := header[len(header)-8]; ch >= '0' && ch <= '9' {
			return string(ch)
		}
	}
	return defaultCredits
}

// Lectures first, unknown formats last
func sectionOrder(t SectionType) int {
	if t == Unknown {
		return int(Recitation) + 1
	}
	return int(t)
}

// prefix returns the first n characters of s
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// DecodeDepartment reads a department schedule JSON document
func DecodeDepartment(r io.Reader) (RawDepartment, error) {
	var raw RawDepartment
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode department schedule: %w", err)
	}
	return raw, nil
}

// BuildDepartment builds every course of a department schedule, ordered by course id
func BuildDepartment(raw RawDepartment) []*Course {
	courses := make([]*Course, 0, len(raw))
	for header, sections := range raw {
		courses = append(courses, BuildCourse(header, sections))
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].ID < courses[j].ID
	})
	return courses
}

// ReadMajor reads a requirement CSV. The header row is skipped, column 0 holds
// the course id and column 3 the requirement category. Short rows are ignored.
func ReadMajor(name string, r io.Reader) (*Major, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	major := NewMajor(name)

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return major, nil
		}
		return nil, fmt.Errorf("failed to read requirement header: %w", err)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read requirement row: %w", err)
		}
		if len(row) < 4 {
			continue
		}
		id := strings.TrimSpace(row[0])
		category := ParseCategory(row[3])
		major.Groups[category] = append(major.Groups[category], id)
	}

	return major, nil
}
