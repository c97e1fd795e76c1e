package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/spendwise/internal/config"
	"github.com/theirongolddev/spendwise/internal/tracker"
	"github.com/theirongolddev/spendwise/internal/tui/theme"
)

// setupValues is bound to the first-run form. It lives behind a pointer
// because the App value is copied on every Update.
type setupValues struct {
	name   string
	budget string
	theme  string
}

func newSetupValues(cfg config.Config, dash *tracker.Dashboard) *setupValues {
	v := &setupValues{name: cfg.General.Name, theme: cfg.Appearance.Theme}
	switch {
	case cfg.Budget.Monthly != nil:
		v.budget = strconv.FormatFloat(*cfg.Budget.Monthly, 'f', -1, 64)
	case dash != nil && dash.Profile.MonthlyBudget > 0:
		v.budget = strconv.FormatFloat(dash.Profile.MonthlyBudget, 'f', -1, 64)
	}
	return v
}

// NewSetupForm builds the setup form used by both the TUI first run and
// the setup command. The returned function applies the answers to cfg once
// the form has completed.
func NewSetupForm(cfg config.Config) (*huh.Form, func() (config.Config, error)) {
	v := newSetupValues(cfg, nil)
	return newSetupForm(v), func() (config.Config, error) { return v.apply(cfg) }
}

func newSetupForm(v *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to spendwise").
				Description("Track what you spend, see where it goes,\nand earn badges for spending less."),
			huh.NewInput().
				Title("What should we call you?").
				Description("Shown on your certificates.").
				Value(&v.name),
			huh.NewInput().
				Title("Monthly budget").
				Description("Leave empty to skip. Budget rules are off without one.").
				Placeholder("1500").
				Validate(validateAmount(true)).
				Value(&v.budget),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.theme),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
}

// validateAmount accepts a non-negative decimal, and the empty string
// when allowEmpty is set.
func validateAmount(allowEmpty bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if allowEmpty {
				return nil
			}
			return errors.New("amount is required")
		}
		f, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
		if err != nil {
			return errors.New("enter a number like 42.50")
		}
		if f < 0 {
			return errors.New("amount must not be negative")
		}
		return nil
	}
}

// apply copies the form answers into cfg.
func (v *setupValues) apply(cfg config.Config) (config.Config, error) {
	cfg.General.Name = strings.TrimSpace(v.name)
	if v.theme != "" {
		cfg.Appearance.Theme = v.theme
	}
	if s := strings.TrimPrefix(strings.TrimSpace(v.budget), "$"); s != "" {
		budget, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return cfg, err
		}
		cfg.Budget.Monthly = &budget
	}
	return cfg, nil
}

type profileSavedMsg struct {
	err error
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		a.needSetup = false
		cfg, err := a.setupVals.apply(loadConfigOrDefault())
		if err == nil {
			err = config.Save(cfg)
		}
		if err != nil {
			a.setFlash("Could not save config: " + err.Error())
			return a, nil
		}
		theme.SetActive(cfg.Appearance.Theme)
		return a, syncProfileCmd(a.engine, a.userID, cfg)
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

// syncProfileCmd pushes the configured name and budget to the store.
func syncProfileCmd(engine Engine, userID string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		_, err := engine.SyncProfile(ctx, userID, cfg.General.Name, cfg.Budget.Monthly)
		return profileSavedMsg{err: err}
	}
}
