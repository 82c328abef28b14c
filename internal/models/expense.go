package models

import "time"

// ExpenseCategory is one of the twelve fixed spending categories.
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "Food"
	CategoryHousing        ExpenseCategory = "Housing"
	CategoryTransportation ExpenseCategory = "Transportation"
	CategoryUtilities      ExpenseCategory = "Utilities"
	CategoryEntertainment  ExpenseCategory = "Entertainment"
	CategoryHealthcare     ExpenseCategory = "Healthcare"
	CategoryShopping       ExpenseCategory = "Shopping"
	CategoryEducation      ExpenseCategory = "Education"
	CategoryPersonalCare   ExpenseCategory = "Personal Care"
	CategoryDebt           ExpenseCategory = "Debt"
	CategorySavings        ExpenseCategory = "Savings"
	CategoryOther          ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood,
	CategoryHousing,
	CategoryTransportation,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryShopping,
	CategoryEducation,
	CategoryPersonalCare,
	CategoryDebt,
	CategorySavings,
	CategoryOther,
}

// IsValidExpenseCategory reports whether c is one of the fixed categories.
func IsValidExpenseCategory(c ExpenseCategory) bool {
	for _, cat := range ExpenseCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// Expense represents a single spending record owned by one user.
// Amount is stored in cents.
type Expense struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Category    ExpenseCategory `gorm:"not null" json:"category"`
	Description string          `gorm:"not null" json:"description"`
	Date        time.Time       `gorm:"not null" json:"date"`
}

// MonthlyIncome records a user's declared income for one calendar month, in cents.
type MonthlyIncome struct {
	Base
	UserID uint  `gorm:"not null;index:idx_monthly_income,unique" json:"user_id"`
	Month  int   `gorm:"not null;index:idx_monthly_income,unique" json:"month"`
	Year   int   `gorm:"not null;index:idx_monthly_income,unique" json:"year"`
	Amount int64 `gorm:"type:bigint;not null" json:"amount"`
}
