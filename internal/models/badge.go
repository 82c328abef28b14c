package models

// BadgeThreshold ties a badge name to the metric value that earns it.
type BadgeThreshold struct {
	Name      string
	Threshold int
}

// GoalBadges are awarded by completed-goal count, in ascending order.
var GoalBadges = []BadgeThreshold{
	{Name: "Financial Rookie", Threshold: 1},
	{Name: "Budget Apprentice", Threshold: 3},
	{Name: "Savings Enthusiast", Threshold: 5},
	{Name: "Money Master", Threshold: 10},
	{Name: "Financial Guru", Threshold: 20},
}

// StreakBadges are awarded when the login streak reaches the threshold.
var StreakBadges = []BadgeThreshold{
	{Name: "7-Day Streak", Threshold: 7},
	{Name: "Monthly Dedication", Threshold: 30},
}

// BadgeAward is an earned badge. The unique index makes awards idempotent.
type BadgeAward struct {
	Base
	UserID uint   `gorm:"not null;index:idx_badge_award,unique" json:"user_id"`
	Name   string `gorm:"not null;index:idx_badge_award,unique" json:"name"`
}
