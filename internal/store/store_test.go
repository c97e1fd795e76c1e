package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/theirongolddev/spendwise/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "spendwise.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.GetProfile(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetProfile(missing) err = %v, want ErrNotFound", err)
	}
	if err := s.SetMonthlyBudget(ctx, "u1", 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetMonthlyBudget(missing) err = %v, want ErrNotFound", err)
	}

	if err := s.UpsertProfile(ctx, model.Profile{ID: "u1", Name: "Sam", MonthlyBudget: 1500}); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if err := s.SetMonthlyBudget(ctx, "u1", 1234.5); err != nil {
		t.Fatalf("SetMonthlyBudget: %v", err)
	}
	p, err := s.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.Name != "Sam" || p.MonthlyBudget != 1234.5 {
		t.Fatalf("profile = %+v", p)
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not persisted")
	}
}

func TestExpenses(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	items := []model.Expense{
		{UserID: "u1", ItemName: "Lunch", Amount: 12.1, Category: model.CategoryFood, Type: model.ExpenseWant, Date: date(2025, 6, 3)},
		{UserID: "u1", ItemName: "Rent", Amount: 900, Category: model.CategoryBills, Type: model.ExpenseNeed, Date: date(2025, 6, 1)},
		{UserID: "u1", ItemName: "Flight", Amount: 300, Category: model.CategoryTravel, Type: model.ExpenseWant, Date: date(2025, 5, 30)},
		{UserID: "u2", ItemName: "Other user", Amount: 1, Category: model.CategoryOther, Type: model.ExpenseWant, Date: date(2025, 6, 2)},
	}
	for i := range items {
		if err := s.AddExpense(ctx, &items[i]); err != nil {
			t.Fatalf("AddExpense: %v", err)
		}
		if items[i].ID == "" {
			t.Fatal("AddExpense did not assign an ID")
		}
	}

	june := model.Period{Start: date(2025, 6, 1), End: date(2025, 6, 30).Add(24*time.Hour - time.Millisecond)}
	got, err := s.ListExpenses(ctx, "u1", june)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(got) != 2 || got[0].ItemName != "Lunch" || got[1].ItemName != "Rent" {
		t.Fatalf("ListExpenses = %+v, want Lunch then Rent", got)
	}
	if got[0].Amount != 12.1 || !got[0].Date.Equal(date(2025, 6, 3)) {
		t.Fatalf("round-trip = %+v", got[0])
	}

	all, err := s.AllExpenses(ctx, "u1")
	if err != nil || len(all) != 3 {
		t.Fatalf("AllExpenses = %d, %v; want 3", len(all), err)
	}

	if err := s.DeleteExpense(ctx, "u2", items[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteExpense(other user) err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteExpense(ctx, "u1", items[0].ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if _, err := s.GetExpense(ctx, "u1", items[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetExpense(deleted) err = %v, want ErrNotFound", err)
	}
	n, err := s.CountExpenses(ctx, "u1")
	if err != nil || n != 2 {
		t.Fatalf("CountExpenses = %d, %v; want 2", n, err)
	}
}

func TestAddExpenses_SkipsExistingIDs(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	batch := []model.Expense{
		{ID: "a", UserID: "u1", ItemName: "Coffee", Amount: 3.5, Category: model.CategoryFood, Type: model.ExpenseWant, Date: date(2025, 6, 1)},
		{ID: "b", UserID: "u1", ItemName: "Bus", Amount: 2, Category: model.CategoryTravel, Type: model.ExpenseNeed, Date: date(2025, 6, 1)},
	}
	n, err := s.AddExpenses(ctx, batch)
	if err != nil || n != 2 {
		t.Fatalf("AddExpenses = %d, %v; want 2", n, err)
	}
	n, err = s.AddExpenses(ctx, batch)
	if err != nil || n != 0 {
		t.Fatalf("AddExpenses(again) = %d, %v; want 0", n, err)
	}
}

func TestGoals(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	deadline := date(2025, 12, 31)
	g := model.Goal{UserID: "u1", Title: "Emergency fund", TargetAmount: 1000, Deadline: &deadline}
	if err := s.AddGoal(ctx, &g); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if err := s.UpdateGoalProgress(ctx, "u1", g.ID, 250); err != nil {
		t.Fatalf("UpdateGoalProgress: %v", err)
	}

	goals, err := s.ListGoals(ctx, "u1")
	if err != nil || len(goals) != 1 {
		t.Fatalf("ListGoals = %d, %v; want 1", len(goals), err)
	}
	if goals[0].CurrentAmount != 250 || goals[0].Progress() != 25 {
		t.Fatalf("goal = %+v", goals[0])
	}
	if goals[0].Deadline == nil || !goals[0].Deadline.Equal(deadline) {
		t.Fatalf("Deadline = %v, want %v", goals[0].Deadline, deadline)
	}

	if err := s.DeleteGoal(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteGoal(missing) err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteGoal(ctx, "u1", g.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
}

func TestInsertBadges_Unique(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	award := model.BadgeAward{Type: model.BadgeBudgetKeeper, Name: "Budget Keeper", Description: "Stayed within monthly budget"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.InsertBadges(ctx, "u1", []model.BadgeAward{award}, time.Now()); err != nil {
				t.Errorf("InsertBadges: %v", err)
			}
		}()
	}
	wg.Wait()

	badges, err := s.ListBadges(ctx, "u1")
	if err != nil {
		t.Fatalf("ListBadges: %v", err)
	}
	if len(badges) != 1 {
		t.Fatalf("badges = %d, want 1", len(badges))
	}

	inserted, err := s.InsertBadges(ctx, "u1", []model.BadgeAward{award}, time.Now())
	if err != nil || len(inserted) != 0 {
		t.Fatalf("InsertBadges(dup) = %v, %v; want none", inserted, err)
	}
}

func TestCertificates(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	badges, err := s.InsertBadges(ctx, "u1", []model.BadgeAward{{Type: model.BadgeSmartSpender, Name: "Smart Spender"}}, time.Now())
	if err != nil || len(badges) != 1 {
		t.Fatalf("InsertBadges = %v, %v", badges, err)
	}

	first := model.Certificate{UserID: "u1", BadgeID: badges[0].ID, CertificateType: model.BadgeSmartSpender, RecipientName: "Sam", BadgeName: "Smart Spender"}
	if err := s.IssueCertificate(ctx, &first); err != nil {
		t.Fatalf("IssueCertificate: %v", err)
	}
	second := first
	second.ID = ""
	if err := s.IssueCertificate(ctx, &second); err != nil {
		t.Fatalf("IssueCertificate(again): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("reissue ID = %q, want existing %q", second.ID, first.ID)
	}

	certs, err := s.ListCertificates(ctx, "u1")
	if err != nil || len(certs) != 1 {
		t.Fatalf("ListCertificates = %d, %v; want 1", len(certs), err)
	}
}

func TestNudges(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	now := time.Now()
	if _, err := s.InsertNudges(ctx, "u1", []string{"older"}, now.Add(-time.Hour)); err != nil {
		t.Fatalf("InsertNudges: %v", err)
	}
	inserted, err := s.InsertNudges(ctx, "u1", []string{"a", "b"}, now)
	if err != nil || len(inserted) != 2 {
		t.Fatalf("InsertNudges = %v, %v", inserted, err)
	}

	latest, err := s.ListNudges(ctx, "u1", 2)
	if err != nil || len(latest) != 2 {
		t.Fatalf("ListNudges(2) = %d, %v", len(latest), err)
	}
	if latest[0].Message != "b" {
		t.Fatalf("newest nudge = %q, want b", latest[0].Message)
	}

	if err := s.MarkNudgeRead(ctx, "u1", inserted[0].ID); err != nil {
		t.Fatalf("MarkNudgeRead: %v", err)
	}
	all, _ := s.ListNudges(ctx, "u1", 0)
	if len(all) != 3 {
		t.Fatalf("ListNudges(all) = %d, want 3", len(all))
	}
	for _, n := range all {
		if n.ID == inserted[0].ID && !n.IsRead {
			t.Fatal("nudge not marked read")
		}
	}
}

func TestSnapshots_Upsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	cmp := model.PeriodComparison{Kind: model.PeriodWeek}
	cmp.Current.Start = date(2025, 6, 9)
	cmp.Current.End = date(2025, 6, 15)
	cmp.Current.Total = 50
	cmp.Current.Categories = map[model.Category]float64{model.CategoryFood: 50}

	for _, total := range []float64{50, 75} {
		cmp.Current.Total = total
		if err := s.UpsertComparison(ctx, "u1", cmp); err != nil {
			t.Fatalf("UpsertComparison: %v", err)
		}
	}
	saved, err := s.ListComparisons(ctx, "u1", model.PeriodWeek, 0)
	if err != nil || len(saved) != 1 {
		t.Fatalf("ListComparisons = %d, %v; want 1 row", len(saved), err)
	}
	if saved[0].Total != 75 || saved[0].Categories[model.CategoryFood] != 50 {
		t.Fatalf("saved = %+v", saved[0])
	}

	for _, score := range []int{90, 70} {
		in := model.SpendingInsight{UserID: "u1", Month: "2025-06", TotalSpent: 10, SmartSpendScore: score}
		if err := s.UpsertInsight(ctx, in); err != nil {
			t.Fatalf("UpsertInsight: %v", err)
		}
	}
	insights, err := s.ListInsights(ctx, "u1", 12)
	if err != nil || len(insights) != 1 || insights[0].SmartSpendScore != 70 {
		t.Fatalf("ListInsights = %+v, %v; want one row with score 70", insights, err)
	}
}

func TestFileTracker(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.TrackFiles(ctx, "u1", []FileInfo{{Path: "/a.csv", MtimeNs: 1, SizeBytes: 10}}); err != nil {
		t.Fatalf("TrackFiles: %v", err)
	}
	if err := s.TrackFiles(ctx, "u1", []FileInfo{{Path: "/a.csv", MtimeNs: 2, SizeBytes: 20}}); err != nil {
		t.Fatalf("TrackFiles: %v", err)
	}
	tracked, err := s.TrackedFiles(ctx, "u1")
	if err != nil {
		t.Fatalf("TrackedFiles: %v", err)
	}
	if got := tracked["/a.csv"]; got.MtimeNs != 2 || got.SizeBytes != 20 {
		t.Fatalf("tracked = %+v", got)
	}

	other, err := s.TrackedFiles(ctx, "u2")
	if err != nil {
		t.Fatalf("TrackedFiles(u2): %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("TrackedFiles(u2) = %v, want none", other)
	}
}

func TestAddExpenses_SameIDDifferentUsers(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, user := range []string{"u1", "u2"} {
		n, err := s.AddExpenses(ctx, []model.Expense{{
			ID: "shared", UserID: user, ItemName: "Lunch", Amount: 12,
			Category: model.CategoryFood, Type: model.ExpenseWant, Date: date(2025, 6, 2),
		}})
		if err != nil || n != 1 {
			t.Fatalf("AddExpenses(%s) = %d, %v; want 1 inserted", user, n, err)
		}
	}
	for _, user := range []string{"u1", "u2"} {
		if _, err := s.GetExpense(ctx, user, "shared"); err != nil {
			t.Fatalf("GetExpense(%s): %v", user, err)
		}
	}
	if err := s.DeleteExpense(ctx, "u1", "shared"); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if _, err := s.GetExpense(ctx, "u2", "shared"); err != nil {
		t.Fatalf("u2 expense gone after deleting u1's: %v", err)
	}
}
