package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwise/internal/config"
	"github.com/theirongolddev/spendwise/internal/insight"
	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/tracker"
)

type fakeEngine struct {
	failInsights bool
	budget       float64
	profileName  string
	added        []tracker.ExpenseInput
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.Local)
}

func (f *fakeEngine) Dashboard(context.Context, string) (*tracker.Dashboard, error) {
	return &tracker.Dashboard{
		Profile: model.Profile{ID: "u1", Name: "Sam", MonthlyBudget: 1000},
		Month:   model.Period{Start: day(1), End: day(30)},
		Summary: model.Summary{Total: 450, NeedsTotal: 300, WantsTotal: 150, Count: 3},
		Budget:  model.BudgetStats{MonthlyBudget: 1000, Spent: 450, Remaining: 550, BudgetUsedPercent: 45, DaysRemaining: 12},
		Score:   72, ScoreLabel: "Good",
		Stats: []model.CategoryStats{
			{Category: model.CategoryFood, Total: 300, Percentage: 66.7, Count: 2, NeedsTotal: 300},
			{Category: model.CategoryShopping, Total: 150, Percentage: 33.3, Count: 1, WantsTotal: 150},
		},
		Daily: []model.DailySpend{{Date: day(1), Total: 100}, {Date: day(2), Total: 0}, {Date: day(3), Total: 350}},
		Recent: []model.Expense{
			{ID: "e1", ItemName: "Groceries", Amount: 200, Category: model.CategoryFood, Type: model.ExpenseNeed, Date: day(3)},
		},
		Impulsive: true,
		Nudges:    []model.Nudge{{ID: "n1", Message: "Shopping is a third of your spending."}},
		NewBadges: []model.BadgeAward{{Type: model.BadgeTrackingChampion, Name: "Tracking Champion"}},
	}, nil
}

func (f *fakeEngine) Insights(context.Context, string) (*tracker.Insights, error) {
	if f.failInsights {
		return nil, errors.New("insights unavailable")
	}
	cmp := model.PeriodComparison{
		Kind:               model.PeriodWeek,
		Current:            model.PeriodData{Period: model.Period{Start: day(2), End: day(8)}, Breakdown: model.Breakdown{Total: 80}},
		Previous:           model.PeriodData{Breakdown: model.Breakdown{Total: 100}},
		TotalChange:        -20,
		TotalChangePercent: -20,
		CategoryChanges:    map[model.Category]model.CategoryChange{model.CategoryFood: {Amount: -20, Percent: -20}},
		Improvement:        true,
	}
	return &tracker.Insights{Weekly: cmp, Monthly: cmp, WeekDaily: []model.DailySpend{{Date: day(2), Total: 80}}}, nil
}

func (f *fakeEngine) Rewards(context.Context, string) (*tracker.Rewards, error) {
	earnedAt := day(3)
	cat := insight.DefaultCatalog()
	return &tracker.Rewards{
		Points:       115,
		ExpenseCount: 3,
		Catalog: []tracker.BadgeStatus{
			{Type: model.BadgeTrackingChampion, Info: cat.Lookup(model.BadgeTrackingChampion), Earned: true, EarnedAt: &earnedAt},
			{Type: model.BadgeBudgetKeeper, Info: cat.Lookup(model.BadgeBudgetKeeper)},
		},
		Certificates: []model.Certificate{{BadgeName: "Tracking Champion", RecipientName: "Sam", IssuedAt: earnedAt}},
	}, nil
}

func (f *fakeEngine) Goals(context.Context, string) ([]model.Goal, error) {
	return []model.Goal{{ID: "g1", Title: "Trip", TargetAmount: 1000, CurrentAmount: 800}}, nil
}

func (f *fakeEngine) AddExpense(_ context.Context, _ string, in tracker.ExpenseInput) (model.Expense, error) {
	f.added = append(f.added, in)
	return model.Expense{ItemName: in.ItemName, Amount: in.Amount}, nil
}

func (f *fakeEngine) SyncProfile(_ context.Context, _ string, name string, budget *float64) (model.Profile, error) {
	f.profileName = name
	if budget != nil {
		f.budget = *budget
	}
	return model.Profile{Name: name, MonthlyBudget: f.budget}, nil
}

func loadedApp(t *testing.T, engine Engine, width int) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	data, err := fetchAll(context.Background(), engine, "u1", nil)
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	a := NewApp(engine, "u1", config.DefaultConfig())
	a.needSetup = false
	m, _ := a.Update(tea.WindowSizeMsg{Width: width, Height: 60})
	m, _ = m.Update(DataLoadedMsg{Data: data})
	return m.(App)
}

func TestFetchAll_ReportsEveryStep(t *testing.T) {
	var steps []string
	data, err := fetchAll(context.Background(), &fakeEngine{}, "u1", func(current, total int, step string) {
		if total != 4 {
			t.Errorf("total = %d, want 4", total)
		}
		steps = append(steps, step)
	})
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	if len(steps) != 4 {
		t.Fatalf("steps = %v, want 4", steps)
	}
	if data.dash == nil || data.ins == nil || data.rewards == nil || len(data.goals) != 1 {
		t.Fatalf("snapshot incomplete: %+v", data)
	}
}

func TestFetchAll_StopsOnError(t *testing.T) {
	data, err := fetchAll(context.Background(), &fakeEngine{failInsights: true}, "u1", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if data.dash != nil {
		t.Fatal("partial snapshot returned with error")
	}
}

func TestUpdateKey_TabNavigation(t *testing.T) {
	a := loadedApp(t, &fakeEngine{}, 140)

	press := func(a App, key string) App {
		t.Helper()
		var msg tea.KeyMsg
		switch key {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		m, _ := a.Update(msg)
		return m.(App)
	}

	tests := []struct {
		key  string
		want int
	}{
		{"c", tabCategories},
		{"m", tabCompare},
		{"b", tabBadges},
		{"x", tabSettings},
		{"right", tabOverview},
		{"left", tabSettings},
		{"o", tabOverview},
	}
	for _, tt := range tests {
		a = press(a, tt.key)
		if a.activeTab != tt.want {
			t.Fatalf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestView_RendersEveryTab(t *testing.T) {
	for _, width := range []int{100, 160} {
		a := loadedApp(t, &fakeEngine{}, width)
		for tab, want := range map[int]string{
			tabOverview:   "Groceries",
			tabCategories: "Needs vs Wants",
			tabCompare:    "Week over Week",
			tabBadges:     "Tracking Champion",
			tabSettings:   "Refresh Interval",
		} {
			a.activeTab = tab
			out := a.View()
			if !strings.Contains(out, want) {
				t.Errorf("width %d tab %d: view missing %q", width, tab, want)
			}
			if h := lipgloss.Height(out); h != 60 {
				t.Errorf("width %d tab %d: height = %d, want 60", width, tab, h)
			}
		}
	}
}

func TestRefreshData_FlashesNewBadges(t *testing.T) {
	engine := &fakeEngine{}
	a := loadedApp(t, engine, 140)
	data, err := fetchAll(context.Background(), engine, "u1", nil)
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	m, _ := a.Update(RefreshDataMsg{Data: data})
	a = m.(App)
	if !strings.Contains(a.flash, "1 new badge") {
		t.Fatalf("flash = %q, want a new badge notice", a.flash)
	}
}

func TestSettingsSave_BudgetSyncsProfile(t *testing.T) {
	engine := &fakeEngine{}
	a := loadedApp(t, engine, 140)
	a.activeTab = tabSettings
	a.settings.cursor = settingsFieldBudget

	m, _ := a.settingsStartEdit()
	a = m.(App)
	a.settings.input.SetValue("1200")

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(App)
	if a.settings.saveErr != nil || !a.settings.saved {
		t.Fatalf("save failed: %v", a.settings.saveErr)
	}
	if cmd == nil {
		t.Fatal("budget edit returned no profile sync command")
	}
	if msg, ok := cmd().(profileSavedMsg); !ok || msg.err != nil {
		t.Fatalf("sync msg = %#v", msg)
	}
	if engine.budget != 1200 {
		t.Fatalf("engine budget = %v, want 1200", engine.budget)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if cfg.Budget.Monthly == nil || *cfg.Budget.Monthly != 1200 {
		t.Fatalf("saved budget = %v, want 1200", cfg.Budget.Monthly)
	}
}

func TestSettingsSave_RejectsBadInterval(t *testing.T) {
	a := loadedApp(t, &fakeEngine{}, 140)
	a.settings.cursor = settingsFieldRefreshInterval
	m, _ := a.settingsStartEdit()
	a = m.(App)
	a.settings.input.SetValue("3")

	before := a.refreshInterval
	if cmd := a.settingsSave(); cmd != nil {
		t.Fatal("interval edit should not return a command")
	}
	if a.settings.saveErr == nil {
		t.Fatal("expected validation error")
	}
	if a.refreshInterval != before {
		t.Fatalf("refreshInterval = %v, want unchanged %v", a.refreshInterval, before)
	}
}

func TestExpenseValuesInput(t *testing.T) {
	v := newExpenseValues(day(5))
	v.item = "Lunch"
	v.amount = "$12.50"
	in, err := v.input()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Amount != 12.5 || in.Date != "2025-06-05" || in.Category != string(model.CategoryFood) {
		t.Fatalf("input = %+v", in)
	}
	if err := validatePositive("0"); err == nil {
		t.Fatal("validatePositive(0) = nil, want error")
	}
}
