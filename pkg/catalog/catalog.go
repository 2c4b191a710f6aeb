package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2/log"
)

// Catalog is the read-only course offering of a term plus the requirement lists of the majors
type Catalog struct {
	departments []string
	courses     map[string][]*Course
	byID        map[string]*Course
	majors      []string
	majorByName map[string]*Major
}

// New returns an empty catalog
func New() *Catalog {
	return &Catalog{
		courses:     make(map[string][]*Course),
		byID:        make(map[string]*Course),
		majorByName: make(map[string]*Major),
	}
}

// AddDepartment registers the courses of a department, replacing any earlier ones
func (c *Catalog) AddDepartment(code string, courses []*Course) {
	if old, exists := c.courses[code]; exists {
		for _, course := range old {
			delete(c.byID, course.ID)
		}
	} else {
		c.departments = append(c.departments, code)
	}

	c.courses[code] = courses
	for _, course := range courses {
		c.byID[course.ID] = course
	}
}

// AddMajor registers a major, replacing one with the same name
func (c *Catalog) AddMajor(m *Major) {
	if _, exists := c.majorByName[m.Name]; !exists {
		c.majors = append(c.majors, m.Name)
	}
	c.majorByName[m.Name] = m
}

// Departments returns the department codes in load order
func (c *Catalog) Departments() []string {
	return append([]string(nil), c.departments...)
}

// Courses returns the courses of a department ordered by id
func (c *Catalog) Courses(department string) []*Course {
	return c.courses[department]
}

// Course returns the course with the given id, or nil
func (c *Catalog) Course(id string) *Course {
	return c.byID[id]
}

// Lookup resolves a (possibly dangling) course reference
func (c *Catalog) Lookup(id string) Resolution {
	return Resolution{ID: id, Course: c.byID[id]}
}

// Majors returns the major names in load order
func (c *Catalog) Majors() []string {
	return append([]string(nil), c.majors...)
}

// Major returns the named major, or nil
func (c *Catalog) Major(name string) *Major {
	return c.majorByName[name]
}

// Requirements returns the course ids of a requirement group exactly as declared.
// Unknown majors and empty groups yield nil.
func (c *Catalog) Requirements(major string, category Category) []string {
	m := c.majorByName[major]
	if m == nil {
		return nil
	}
	return m.Groups[category]
}

// Resolve looks up every course of a requirement group
func (c *Catalog) Resolve(major string, category Category) []Resolution {
	ids := c.Requirements(major, category)
	out := make([]Resolution, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Lookup(id))
	}
	return out
}

// SchedulePath is the file a department schedule is stored in
func SchedulePath(dir, department string) string {
	return filepath.Join(dir, fmt.Sprintf("schedule_%s.json", department))
}

// RequirementPath is the file a major's requirement list is stored in
func RequirementPath(dir, major string) string {
	return filepath.Join(dir, fmt.Sprintf("require_%s.csv", major))
}

// Load reads all department schedules and major requirement lists from dir.
// Missing files leave the department or major empty. Files that cannot be parsed
// are reported in the returned error, but the catalog still holds everything else.
func Load(dir string, departments, majors []string) (*Catalog, error) {
	cat := New()
	var errs []error

	for _, dept := range departments {
		courses, err := loadDepartmentFile(SchedulePath(dir, dept))
		if err != nil {
			errs = append(errs, fmt.Errorf("department %s: %w", dept, err))
		}
		cat.AddDepartment(dept, courses)
	}

	for _, name := range majors {
		major, err := loadMajorFile(name, RequirementPath(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("major %s: %w", name, err))
			major = NewMajor(name)
		}
		cat.AddMajor(major)
	}

	return cat, errors.Join(errs...)
}

func loadDepartmentFile(path string) ([]*Course, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("schedule file not found: %s", path)
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	raw, err := DecodeDepartment(f)
	if err != nil {
		return nil, err
	}
	return BuildDepartment(raw), nil
}

func loadMajorFile(name, path string) (*Major, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("requirement file not found: %s", path)
			return NewMajor(name), nil
		}
		return nil, err
	}
	defer f.Close()

	return ReadMajor(name, f)
}
