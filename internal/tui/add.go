package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/source"
	"github.com/theirongolddev/spendwise/internal/tracker"
	"github.com/theirongolddev/spendwise/internal/tui/theme"
)

// expenseValues is bound to the add-expense form.
type expenseValues struct {
	item     string
	amount   string
	category string
	typ      string
	date     string
}

func newExpenseValues(now time.Time) *expenseValues {
	return &expenseValues{
		category: string(model.CategoryFood),
		typ:      string(model.ExpenseWant),
		date:     now.Format("2006-01-02"),
	}
}

func (v *expenseValues) input() (tracker.ExpenseInput, error) {
	amount, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(v.amount), "$"), 64)
	if err != nil {
		return tracker.ExpenseInput{}, err
	}
	return tracker.ExpenseInput{
		ItemName: v.item,
		Amount:   amount,
		Category: v.category,
		Type:     v.typ,
		Date:     v.date,
	}, nil
}

func newExpenseForm(v *expenseValues) *huh.Form {
	catOpts := make([]huh.Option[string], 0, len(model.Categories))
	for _, c := range model.Categories {
		catOpts = append(catOpts, huh.NewOption(string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What did you buy?").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errRequired
					}
					return nil
				}).
				Value(&v.item),
			huh.NewInput().
				Title("Amount").
				Placeholder("12.50").
				Validate(validatePositive).
				Value(&v.amount),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOpts...).
				Value(&v.category),
			huh.NewSelect[string]().
				Title("Need or want?").
				Options(
					huh.NewOption("Need", string(model.ExpenseNeed)),
					huh.NewOption("Want", string(model.ExpenseWant)),
				).
				Value(&v.typ),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Validate(func(s string) error {
					_, err := source.ParseDate(s)
					return err
				}).
				Value(&v.date),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

var (
	errRequired = errors.New("required")
	errPositive = errors.New("amount must be greater than zero")
)

func validatePositive(s string) error {
	if err := validateAmount(false)(s); err != nil {
		return err
	}
	if f, _ := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64); f == 0 {
		return errPositive
	}
	return nil
}

func formWidth(termWidth int) int {
	w := termWidth - 10
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	switch a.addForm.State {
	case huh.StateCompleted:
		a.addForm = nil
		in, err := a.addVals.input()
		if err != nil {
			a.setFlash("Could not add expense: " + err.Error())
			return a, nil
		}
		return a, addExpenseCmd(a.engine, a.userID, in)
	case huh.StateAborted:
		a.addForm = nil
		return a, nil
	}
	return a, cmd
}

func addExpenseCmd(engine Engine, userID string, in tracker.ExpenseInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		e, err := engine.AddExpense(ctx, userID, in)
		return ExpenseAddedMsg{Expense: e, Err: err}
	}
}

func (a App) viewAddForm() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := titleStyle.Render("◈ Add Expense") + "\n\n" +
		a.addForm.View() + "\n" +
		dimStyle.Render("Esc to cancel")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}
