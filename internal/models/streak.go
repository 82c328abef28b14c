package models

import "time"

// Streak tracks consecutive calendar days of observed activity for one user.
// LastCheck is compared by calendar date, not elapsed hours.
type Streak struct {
	Base
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Days      int       `gorm:"not null;default:0" json:"days"`
	LastCheck time.Time `gorm:"not null" json:"last_check"`
}
