package tui

import (
	"fmt"

	"coursectl/pkg/catalog"
	"coursectl/pkg/config"
	"coursectl/pkg/selection"

	"github.com/charmbracelet/huh/spinner"
)

// Session is the state of one interactive run. Every screen receives it
// explicitly; nothing about the selection is kept in package variables.
type Session struct {
	Config    *config.AppConfig
	Catalog   *catalog.Catalog
	Selection *selection.Set
	Major     string
}

// NewSession loads the catalog described by cfg and starts with an empty selection.
// Files that fail to parse are reported but do not stop the session.
func NewSession(cfg *config.AppConfig) (*Session, error) {
	var cat *catalog.Catalog
	var loadErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Loading course data from %s...", cfg.DataDir)).
		Action(func() {
			cat, loadErr = catalog.Load(cfg.DataDir, cfg.Departments, cfg.Majors)
		}).
		Run()

	if cat == nil {
		return nil, fmt.Errorf("failed to load course data: %w", loadErr)
	}
	if loadErr != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Some course data could not be read: %v", loadErr)))
	}

	return newSession(cfg, cat), nil
}

func newSession(cfg *config.AppConfig, cat *catalog.Catalog) *Session {
	major := cfg.DefaultMajor
	if cat.Major(major) == nil {
		if majors := cat.Majors(); len(majors) > 0 {
			major = majors[0]
		}
	}

	return &Session{
		Config:    cfg,
		Catalog:   cat,
		Selection: selection.New(),
		Major:     major,
	}
}

// ReloadConfig picks up settings saved since the session started.
// The catalog stays as loaded; data directory and department changes apply on the next start.
func (s *Session) ReloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.Config = cfg
	return nil
}
