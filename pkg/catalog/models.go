package catalog

import (
	"fmt"
	"strings"
)

// TimeSlot is one weekly recurring meeting. Weekday runs 1 (Monday) to 7 (Sunday),
// StartMin and EndMin are minutes since midnight.
type TimeSlot struct {
	Weekday  int
	StartMin int
	EndMin   int
}

// Valid reports whether the slot can be placed on a weekly calendar
func (t TimeSlot) Valid() bool {
	return t.Weekday >= 1 && t.Weekday <= 7 &&
		t.StartMin >= 0 && t.EndMin < 24*60 &&
		t.StartMin < t.EndMin
}

// Clock formats a minute-of-day value as "HH:MM"
func Clock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// SectionType is the teaching format of a section
type SectionType int

const (
	Unknown SectionType = iota
	Lecture
	Tutorial
	Lab
	Recitation
)

var sectionTypeNames = map[SectionType]string{
	Lecture:    "lecture",
	Tutorial:   "tutorial",
	Lab:        "lab",
	Recitation: "recitation",
}

// ParseSectionType maps a schedule label ("Lecture", "LAB", ...) to a SectionType.
// Labels it does not know become Unknown.
func ParseSectionType(label string) SectionType {
	l := strings.ToLower(strings.TrimSpace(label))
	for t, name := range sectionTypeNames {
		if name == l {
			return t
		}
	}
	return Unknown
}

func (t SectionType) String() string {
	if name, ok := sectionTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Section is one teaching instance of a course
type Section struct {
	ID         string
	Type       SectionType
	Label      string // lower-cased source label, kept for Unknown types
	Room       string
	Instructor string
	Times      []TimeSlot
	RawTime    string // e.g. "MoWeFr 10:00AM - 11:00AM"
}

// Scheduled reports whether the section has at least one well-formed meeting time
func (s *Section) Scheduled() bool {
	for _, t := range s.Times {
		if t.Valid() {
			return true
		}
	}
	return false
}

// TypeLabel returns the section type as shown to users
func (s *Section) TypeLabel() string {
	if s.Type == Unknown && s.Label != "" {
		return s.Label
	}
	return s.Type.String()
}

// Course is a course offered in the term together with its sections
type Course struct {
	ID         string // "AIAA 1010"
	Name       string
	Credits    string
	Department string
	Sections   []*Section
}

// Section looks up a section of the course by id
func (c *Course) Section(id string) *Section {
	for _, s := range c.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Category is a requirement group of a major
type Category int

const (
	OtherCategory Category = iota
	Fundamental
	MajorRequired
	MajorElective
)

var categoryNames = map[Category]string{
	Fundamental:   "Fundamental",
	MajorRequired: "Major Required",
	MajorElective: "Major Elective",
}

// ParseCategory maps a requirement label to a Category
func ParseCategory(label string) Category {
	l := strings.TrimSpace(label)
	for c, name := range categoryNames {
		if strings.EqualFold(name, l) {
			return c
		}
	}
	return OtherCategory
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Other"
}

// Categories lists the requirement groups in display order
func Categories() []Category {
	return []Category{Fundamental, MajorRequired, MajorElective, OtherCategory}
}

// Major holds the requirement groups of a study programme
type Major struct {
	Name   string
	Groups map[Category][]string
}

// NewMajor returns a major with empty requirement groups
func NewMajor(name string) *Major {
	return &Major{
		Name:   name,
		Groups: make(map[Category][]string),
	}
}

// Categories returns the non-empty requirement groups in display order
func (m *Major) Categories() []Category {
	var out []Category
	for _, c := range Categories() {
		if len(m.Groups[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Resolution is the outcome of resolving a required course id against the catalog.
// Course is nil when the course is not offered this term.
type Resolution struct {
	ID     string
	Course *Course
}

// Offered reports whether the course was found in the catalog
func (r Resolution) Offered() bool {
	return r.Course != nil
}
