package models

import "time"

// GoalCompletionBadge is assigned to a goal the first time its progress
// reaches the target amount.
const GoalCompletionBadge = "Goal Achieved"

// Goal represents a savings goal with manually-added progress.
// Amounts are stored in cents.
type Goal struct {
	Base
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Title         string    `gorm:"not null" json:"title"`
	TargetAmount  int64     `gorm:"type:bigint;not null" json:"target_amount"`
	CurrentAmount int64     `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	StartDate     time.Time `gorm:"not null" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
	Description   string    `json:"description"`
	Badge         *string   `json:"badge,omitempty"`
}

// IsComplete reports whether the goal's progress has reached its target.
func (g *Goal) IsComplete() bool {
	return g.CurrentAmount >= g.TargetAmount
}
