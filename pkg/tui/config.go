package tui

import (
	"fmt"
	"strconv"
	"strings"

	"coursectl/pkg/config"
	"coursectl/pkg/scraper"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Default Major", "major"),
						huh.NewOption("Set Departments", "departments"),
						huh.NewOption("Set Term Dates", "term"),
						huh.NewOption("Set Data Directory", "datadir"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "major":
			err = runSetDefaultMajorTUI(cfg)
		case "departments":
			err = runSetDepartmentsTUI(cfg)
		case "term":
			err = runSetTermTUI(cfg)
		case "datadir":
			err = runSetDataDirTUI(cfg)
		case "view":
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.coursectl.json) ---"))
			fmt.Println(describeConfig(cfg))
		}

		if err != nil {
			return err
		}
	}
}

func describeConfig(cfg *config.AppConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Data Directory: %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "Term: %s (starts %s, %d weeks, %s)\n", cfg.Term, cfg.TermStart, cfg.TermWeeks, cfg.Timezone)
	fmt.Fprintf(&b, "Departments: %s\n", strings.Join(cfg.Departments, ", "))
	fmt.Fprintf(&b, "Majors: %s (default %s)\n", strings.Join(cfg.Majors, ", "), cfg.DefaultMajor)
	fmt.Fprintf(&b, "Accent Color: %s\n", cfg.AccentColor)
	return b.String()
}

func runSetDefaultMajorTUI(cfg *config.AppConfig) error {
	var selected string
	var options []huh.Option[string]
	for _, m := range cfg.Majors {
		options = append(options, huh.NewOption(m, m).Selected(m == cfg.DefaultMajor))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select the major shown at startup").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.DefaultMajor = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Default major changed to: %s\n", selected)))
	return nil
}

func runSetDepartmentsTUI(cfg *config.AppConfig) error {
	client := scraper.NewClient(cfg.Term)
	var subjects []scraper.Subject
	var err error

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching departments for term %s...", cfg.Term)).
		Action(func() {
			subjects, err = client.FetchSubjects()
		}).
		Run()

	if err != nil {
		return fmt.Errorf("failed to fetch departments: %w", err)
	}

	existingMap := make(map[string]bool)
	for _, d := range cfg.Departments {
		existingMap[d] = true
	}

	var options []huh.Option[string]
	for _, sub := range subjects {
		options = append(options, huh.NewOption(sub.Code, sub.Code).Selected(existingMap[sub.Code]))
	}

	var selected []string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select the departments to load").
				Description("Space = toggle, Enter = confirm. Start typing to filter.").
				Options(options...).
				Value(&selected).
				Filterable(true).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Departments = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Saved %d departments. Run 'coursectl scrape' to download them.\n", len(selected))))
	return nil
}

func runSetTermTUI(cfg *config.AppConfig) error {
	term := cfg.Term
	start := cfg.TermStart
	weeks := strconv.Itoa(cfg.TermWeeks)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Term code").
				Description("As used in the schedule URL, e.g. 2510").
				Value(&term),
			huh.NewInput().
				Title("First day of teaching").
				Placeholder("YYYY-MM-DD").
				Value(&start).
				Validate(config.ValidateDate),
			huh.NewInput().
				Title("Teaching weeks").
				Value(&weeks).
				Validate(func(v string) error {
					n, err := strconv.Atoi(v)
					if err != nil || n <= 0 || n > 52 {
						return fmt.Errorf("please enter a number between 1 and 52")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Term = strings.TrimSpace(term)
	cfg.TermStart = start
	cfg.TermWeeks, _ = strconv.Atoi(weeks)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Term settings saved.\n"))
	return nil
}

func runSetDataDirTUI(cfg *config.AppConfig) error {
	dir := cfg.DataDir

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Directory holding schedule_*.json and require_*.csv").
				Value(&dir),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if dir == "" {
		fmt.Println("Operation cancelled: No directory provided.")
		return nil
	}

	cfg.DataDir = dir
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Data directory set to %s (takes effect on next start)\n", dir)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for coursectl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Lavender", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetCustomTheme(cfg.AccentColor))

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}

func validateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	if _, err := strconv.ParseUint(str[1:], 16, 32); err != nil {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}
