// Package requirements turns the text of a programme's requirement document
// into the per-major requirement CSV read by the catalog.
package requirements

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"coursectl/pkg/catalog"
)

// Row is one required course of a major
type Row struct {
	Code     string // "AIAA 1010"
	Title    string
	Credits  string // "3" or a range like "1-3"
	Category catalog.Category
}

var courseLinePattern = regexp.MustCompile(`([A-Z]{2,4})\s*(\d{4})\s+(.*?)\s+(\d+(?:-\d+)?)$`)

var headings = []struct {
	marker   string
	category catalog.Category
}{
	{"Fundamental Courses", catalog.Fundamental},
	{"Major Required Courses", catalog.MajorRequired},
	{"Major Elective Courses", catalog.MajorElective},
}

// Extract scans document text line by line. Heading lines switch the current
// category, course lines ("AIAA 1010 Introduction to AI 3") become rows.
// Course lines seen before any heading are dropped.
func Extract(r io.Reader) ([]Row, error) {
	var rows []Row
	current := catalog.OtherCategory
	inSection := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if cat, ok := headingCategory(line); ok {
			current = cat
			inSection = true
			continue
		}

		if skipLine(line) {
			continue
		}

		m := courseLinePattern.FindStringSubmatch(line)
		if m == nil || !inSection {
			continue
		}

		rows = append(rows, Row{
			Code:     fmt.Sprintf("%s %s", m[1], m[2]),
			Title:    strings.TrimSpace(m[3]),
			Credits:  m[4],
			Category: current,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirement text: %w", err)
	}
	return rows, nil
}

func headingCategory(line string) (catalog.Category, bool) {
	for _, h := range headings {
		if strings.Contains(line, h.marker) {
			return h.category, true
		}
	}
	return catalog.OtherCategory, false
}

// skipLine filters table headers, separators and alternative markers
func skipLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	for _, marker := range []string{"Course Code", "Credit(s)", "=====", "OR"} {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Sort orders rows by category, then by course number
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return categoryRank(rows[i].Category) < categoryRank(rows[j].Category)
		}
		return courseNumber(rows[i].Code) < courseNumber(rows[j].Code)
	})
}

func categoryRank(c catalog.Category) int {
	if c == catalog.OtherCategory {
		return int(catalog.MajorElective) + 1
	}
	return int(c)
}

// "AIAA 1010" -> "1010"
func courseNumber(code string) string {
	if i := strings.LastIndex(code, " "); i >= 0 {
		return code[i+1:]
	}
	return code
}

// WriteCSV writes rows in the requirement CSV layout: code, title, credits, category
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"course_code", "course_title", "credits", "course_type"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Code, r.Title, r.Credits, r.Category.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
