package scraper

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"coursectl/pkg/catalog"

	"github.com/PuerkitoBio/goquery"
)

// ParseSubject parses a department schedule page into the raw schedule format.
//
// Every course is an <h2> header ("AIAA 1010 - Introduction to AI (3 units)")
// followed by a table.sections whose rows start with the section label.
func ParseSubject(r io.Reader) (catalog.RawDepartment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	schedule := make(catalog.RawDepartment)

	doc.Find("h2").Each(func(i int, h2 *goquery.Selection) {
		header := strings.TrimSpace(h2.Text())
		// Only course headers have a space right after the 9 character course code
		if len(header) <= 9 || header[9] != ' ' {
			return
		}

		sections := make(map[string]map[string][]string)
		schedule[header] = sections

		table := h2.NextAllFiltered("table.sections").First()
		if table.Length() == 0 {
			table = h2.NextAll().Find("table.sections").First()
		}

		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			var cols []string
			row.ChildrenFiltered("td").Each(func(k int, td *goquery.Selection) {
				// instructor cells may wrap the name in a link
				cols = append(cols, strings.TrimSpace(td.Text()))
			})
			if len(cols) == 0 {
				return
			}

			label := classifySection(cols[0])
			if label == "" {
				return
			}

			var details []string
			if len(cols) > 2 {
				details = append(details, cols[1:len(cols)-1]...)
			}

			if sections[label] == nil {
				sections[label] = make(map[string][]string)
			}
			sections[label][cols[0]] = details
		})
	})

	return schedule, nil
}

// classifySection maps a section label such as "L01 (1001)" or "LA2 (1010)"
// to its section type key. Labels it does not recognise return "".
func classifySection(label string) string {
	if strings.HasPrefix(label, "LA") {
		return labelLab
	}
	if len(label) < 2 || label[1] < '0' || label[1] > '9' {
		return ""
	}
	switch label[0] {
	case 'T':
		return labelTutorial
	case 'L':
		return labelLecture
	case 'R':
		return labelRecitation
	}
	return ""
}

// ParseSubjects reads the department list from the term index page
func ParseSubjects(r io.Reader) ([]Subject, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var subjects []Subject
	seen := make(map[string]bool)

	doc.Find(`a[href*="subject/"]`).Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		code := strings.ToUpper(path.Base(strings.TrimSuffix(href, "/")))
		if code == "" || seen[code] {
			return
		}
		seen[code] = true
		subjects = append(subjects, Subject{
			Code: code,
			Name: strings.TrimSpace(sel.Text()),
		})
	})

	return subjects, nil
}

// FetchSubjects lists the departments offering courses in the term
func (c *Client) FetchSubjects() ([]Subject, error) {
	resp, err := c.Get("")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return ParseSubjects(resp.Body)
}

// FetchSubject downloads and parses the schedule of one department
func (c *Client) FetchSubject(code string) (catalog.RawDepartment, error) {
	key := c.term + "_" + code
	if c.useCache {
		if cached, ok := readCache(key); ok {
			return cached, nil
		}
	}

	resp, err := c.Get("subject/" + code)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	schedule, err := ParseSubject(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule for %s: %w", code, err)
	}

	writeCache(key, schedule)
	return schedule, nil
}

// SaveSubject writes a department schedule as indented JSON, creating parent directories
func SaveSubject(file string, schedule catalog.RawDepartment) error {
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	data, err := json.MarshalIndent(schedule, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize schedule: %w", err)
	}

	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("failed to write schedule file: %w", err)
	}
	return nil
}
