package selection

import (
	"coursectl/pkg/catalog"
	"coursectl/pkg/layout"
)

// Pick is a chosen section of a course
type Pick struct {
	Course  *catalog.Course
	Section *catalog.Section
}

// Key identifies a pick independently of the catalog instance it came from
func (p Pick) Key() string {
	return p.Course.ID + "|" + p.Section.ID
}

// Set is the ordered collection of sections a student has chosen in one session.
// It is not safe for concurrent use; every session owns its own Set.
type Set struct {
	picks []Pick
}

// New returns an empty selection
func New() *Set {
	return &Set{}
}

// Toggle removes the pick if it is selected and appends it otherwise.
// It reports whether the pick is selected afterwards.
func (s *Set) Toggle(course *catalog.Course, section *catalog.Section) bool {
	p := Pick{Course: course, Section: section}
	if i := s.index(p); i >= 0 {
		s.removeAt(i)
		return false
	}
	s.picks = append(s.picks, p)
	return true
}

// Contains reports whether the section is selected
func (s *Set) Contains(course *catalog.Course, section *catalog.Section) bool {
	return s.index(Pick{Course: course, Section: section}) >= 0
}

// RemoveAt removes the pick at position i. It reports false for an out-of-range index.
func (s *Set) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.picks) {
		return false
	}
	s.removeAt(i)
	return true
}

// Picks returns the selected sections in the order they were chosen
func (s *Set) Picks() []Pick {
	return append([]Pick(nil), s.picks...)
}

// Len returns the number of selected sections
func (s *Set) Len() int {
	return len(s.picks)
}

// Blocks returns every meeting of every selected section, in selection order
func (s *Set) Blocks() []layout.Block {
	var blocks []layout.Block
	for _, p := range s.picks {
		for _, t := range p.Section.Times {
			blocks = append(blocks, layout.Block{
				CourseID:  p.Course.ID,
				SectionID: p.Section.ID,
				Slot:      t,
			})
		}
	}
	return blocks
}

// Unscheduled returns the picks whose meeting times are unknown
func (s *Set) Unscheduled() []Pick {
	var out []Pick
	for _, p := range s.picks {
		if !p.Section.Scheduled() {
			out = append(out, p)
		}
	}
	return out
}

// Layout arranges the current selection on the weekly calendar
func (s *Set) Layout() []layout.Day {
	return layout.Arrange(s.Blocks())
}

func (s *Set) index(p Pick) int {
	key := p.Key()
	for i, existing := range s.picks {
		if existing.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Set) removeAt(i int) {
	s.picks = append(s.picks[:i], s.picks[i+1:]...)
}
