package models

import "time"

// UserRole distinguishes regular users from the application owner.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleOwner UserRole = "owner"
)

// User represents the user model in the database
type User struct {
	Base
	Name             string     `gorm:"not null" json:"name"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Role             UserRole   `gorm:"not null;default:'user'" json:"role"`
	Income           int64      `gorm:"type:bigint;default:0" json:"income"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Expenses       []Expense       `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Goals          []Goal          `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	MonthlyIncomes []MonthlyIncome `gorm:"foreignKey:UserID" json:"monthly_incomes,omitempty"`
}
