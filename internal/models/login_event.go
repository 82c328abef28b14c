package models

import "time"

// LoginEvent records one login attempt, successful or not. Owner and user
// logins share the table, distinguished by UserType; failed attempts carry
// Success=false.
type LoginEvent struct {
	Base
	Email     string    `gorm:"not null;index" json:"email"`
	UserType  UserRole  `gorm:"not null;default:'user'" json:"user_type"`
	LoginTime time.Time `gorm:"not null" json:"login_time"`
	Success   bool      `gorm:"not null;default:true" json:"success"`
}
