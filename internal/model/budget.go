package model

import "time"

// Profile holds the per-user settings the analytics need.
type Profile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	MonthlyBudget float64   `json:"monthly_budget"`
	CreatedAt     time.Time `json:"created_at"`
}

// BudgetStats holds month-to-date budget usage.
type BudgetStats struct {
	MonthlyBudget     float64 `json:"monthly_budget"`
	Spent             float64 `json:"spent"`
	Remaining         float64 `json:"remaining"`
	BudgetUsedPercent float64 `json:"budget_used_percent"`
	DaysRemaining     int     `json:"days_remaining"`
}

// Goal is a savings target.
type Goal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Progress returns completion as a percentage capped at 100.
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p > 100 {
		return 100
	}
	return p
}

// Nudge is a persisted advisory message.
type Nudge struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Category  Category  `json:"category,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// SpendingInsight is the monthly snapshot written on each dashboard refresh.
type SpendingInsight struct {
	UserID          string          `json:"user_id"`
	Month           string          `json:"month"` // YYYY-MM
	TotalSpent      float64         `json:"total_spent"`
	SmartSpendScore int             `json:"smart_spend_score"`
	Stats           []CategoryStats `json:"insights_data"`
}
