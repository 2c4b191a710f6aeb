package tui

import (
	"fmt"

	"coursectl/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// These act as fallbacks initially, GetTheme() replaces the accent with the saved colour
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// GetTheme loads the user's saved Accent Color and constructs the UI theme.
func GetTheme() *huh.Theme {
	cfg, err := config.Load()
	baseColor := "99"

	if err == nil && cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Update the global lipgloss accent so plain CLI output also receives the color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a new huh.Theme instantiated with the provided lipgloss color string.
// This is used for live-previewing styles before they are saved.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// RunTUI loads the catalog and runs the main menu until the user quits.
// The selection lives only as long as this call.
func RunTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("Welcome to coursectl!"))

	session, err := NewSession(cfg)
	if err != nil {
		return err
	}

	for {
		var action string

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("What would you like to do? (%s, %d sections selected)", session.Major, session.Selection.Len())).
					Options(
						huh.NewOption("🎓 Browse Major Requirements", "major"),
						huh.NewOption("📚 Browse All Courses", "catalog"),
						huh.NewOption("✅ My Sections", "selected"),
						huh.NewOption("📅 Weekly Calendar", "calendar"),
						huh.NewOption("💾 Export Calendar (.ics)", "export"),
						huh.NewOption("🔀 Switch Major", "switch"),
						huh.NewOption("⚙️ Settings", "config"),
						huh.NewOption("👋 Quit", "quit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		switch action {
		case "major":
			err = runMajorBrowser(session)
		case "catalog":
			err = runCatalogBrowser(session)
		case "selected":
			err = runSelectedTUI(session)
		case "calendar":
			printCalendar(session)
		case "export":
			err = runExportTUI(session)
		case "switch":
			err = runSwitchMajorTUI(session)
		case "config":
			if err = RunConfigTUI(); err == nil {
				err = session.ReloadConfig()
			}
		case "quit":
			return nil
		}

		if err != nil {
			return err
		}
	}
}
