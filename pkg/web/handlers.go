package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"coursectl/pkg/exporter"
	"coursectl/pkg/selection"
	"coursectl/pkg/timetable"

	"github.com/gofiber/fiber/v2/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspaceFor(w, r)
	if major := r.URL.Query().Get("major"); major != "" && s.catalog.Major(major) != nil {
		ws.major = major
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", s.page(ws)); err != nil {
		log.Errorf("render index: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleToggle adds or removes the section named by the "course" and "section" form values
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	course := s.catalog.Course(r.FormValue("course"))
	if course == nil {
		http.Error(w, "Unknown course", http.StatusNotFound)
		return
	}
	section := course.Section(r.FormValue("section"))
	if section == nil {
		http.Error(w, "Unknown section", http.StatusNotFound)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.workspaceFor(w, r).selection.Toggle(course, section)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRemove drops the selected section at the "index" form value
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, "Invalid index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspaceFor(w, r)
	if !ws.selection.RemoveAt(index) {
		log.Debugf("remove: index %d out of range", index)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// picks returns the caller's selection without starting a session
func (s *Server) picks(r *http.Request) []selection.Pick {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws := s.lookup(r); ws != nil {
		return ws.selection.Picks()
	}
	return nil
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := timetable.Events(s.picks(r))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(events); err != nil {
		log.Errorf("encode events: %v", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	picks := s.picks(r)

	var buf bytes.Buffer
	if err := exporter.GenerateICS(picks, s.term, &buf); err != nil {
		log.Errorf("export calendar: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	w.Write(buf.Bytes())
}
