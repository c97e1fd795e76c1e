package model

import "time"

// BadgeType is the stable identifier of an achievement.
type BadgeType string

// Badge types.
const (
	BadgeBudgetKeeper     BadgeType = "budget_keeper"
	BadgeSmartSpender     BadgeType = "smart_spender"
	BadgeTrackingChampion BadgeType = "tracking_champion"
	BadgeSaverOfWeek      BadgeType = "saver_of_week"
	BadgeSaverOfMonth     BadgeType = "saver_of_month"
	BadgeSuperSaverWeek   BadgeType = "super_saver_week"
	BadgeSuperSaverMonth  BadgeType = "super_saver_month"
	BadgeSavingsStreak    BadgeType = "savings_streak"
)

// BadgeTypes lists every badge type in display order.
var BadgeTypes = []BadgeType{
	BadgeBudgetKeeper, BadgeSmartSpender, BadgeTrackingChampion, BadgeSavingsStreak,
	BadgeSaverOfWeek, BadgeSaverOfMonth, BadgeSuperSaverWeek, BadgeSuperSaverMonth,
}

// BadgeAward is a badge the evaluator found newly eligible.
type BadgeAward struct {
	Type        BadgeType `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Badge is an earned, persisted award.
type Badge struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        BadgeType `json:"badge_type"`
	Name        string    `json:"badge_name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earned_at"`
}

// Award returns the display triple of an earned badge.
func (b Badge) Award() BadgeAward {
	return BadgeAward{Type: b.Type, Name: b.Name, Description: b.Description}
}

// Certificate is issued once per earned badge.
type Certificate struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	BadgeID         string    `json:"badge_id"`
	CertificateType BadgeType `json:"certificate_type"`
	IssuedAt        time.Time `json:"issued_date"`
	RecipientName   string    `json:"recipient_name"`
	BadgeName       string    `json:"badge_name"`
	Description     string    `json:"description"`
}
