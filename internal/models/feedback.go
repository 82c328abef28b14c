package models

import "time"

// FeedbackItem is a piece of user feedback with a 1-5 rating.
// UserID is nil when feedback is submitted anonymously.
type FeedbackItem struct {
	Base
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"not null" json:"email"`
	Feedback string    `gorm:"not null" json:"feedback"`
	Rating   int       `gorm:"not null" json:"rating"`
	UserID   *uint     `gorm:"index" json:"user_id,omitempty"`
	Date     time.Time `gorm:"not null" json:"date"`
}
