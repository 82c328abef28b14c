package services

import (
	"time"

	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	SetIncome(userID uint, amount int64) (*models.User, error)
	ResetPassword(email, newPassword string) error
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	ClearRefreshToken(userID uint) error
	EnsureOwner(email, password string) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Month    *int
	Year     *int
	Category *models.ExpenseCategory
}

// CategoryTotal is the aggregated spend for one category, in cents.
type CategoryTotal struct {
	Category models.ExpenseCategory `json:"category"`
	Total    int64                  `json:"total"`
}

// MonthTotal is the aggregated spend for one calendar month, in cents.
type MonthTotal struct {
	Month int   `json:"month"`
	Year  int   `json:"year"`
	Total int64 `json:"total"`
}

// ExpenseSummary bundles the derived aggregates for a user's ledger.
// All aggregates are recomputed from the stored records on read.
type ExpenseSummary struct {
	MonthlyTotal      int64           `json:"monthly_total"`
	YearlyTotal       int64           `json:"yearly_total"`
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
	HighestCategory   string          `json:"highest_category"`
	Suggestion        string          `json:"suggestion"`
	HighestMonth      *MonthTotal     `json:"highest_month,omitempty"`
}

// ExpenseServicer defines the contract for expense-ledger business logic.
type ExpenseServicer interface {
	AddExpense(userID uint, amount int64, category models.ExpenseCategory, description string, date time.Time) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	DeleteExpense(userID, expenseID uint) error
	GetSummary(userID uint, year, month int) (*ExpenseSummary, error)
	SetMonthlyIncome(userID uint, month, year int, amount int64) (*models.MonthlyIncome, error)
	GetMonthlyIncomes(userID uint, year int) ([]models.MonthlyIncome, error)
}

// StreakStatus is the current streak state plus any badges the check awarded.
type StreakStatus struct {
	Days      int      `json:"days"`
	LastCheck string   `json:"last_check"`
	NewBadges []string `json:"new_badges,omitempty"`
}

// GoalServicer defines the contract for goal-tracker business logic.
type GoalServicer interface {
	CreateGoal(userID uint, title string, targetAmount int64, description string, startDate, endDate time.Time) (*models.Goal, error)
	GetUserGoals(userID uint) ([]models.Goal, error)
	AddProgress(userID, goalID uint, amount int64) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
	CheckStreak(userID uint, now time.Time) (*StreakStatus, error)
	GetStreak(userID uint) (*models.Streak, error)
	GetBadges(userID uint) ([]models.BadgeAward, error)
}

// PiggyBankState is the piggy bank balance converted for display.
type PiggyBankState struct {
	Balance          int64   `json:"balance"`
	Currency         string  `json:"currency"`
	ConvertedBalance float64 `json:"converted_balance"`
	HasPassword      bool    `json:"has_password"`
}

// PiggyBankServicer defines the contract for piggy-bank business logic.
type PiggyBankServicer interface {
	GetState(userID uint, currency string) (*PiggyBankState, error)
	SetPassword(userID uint, password, confirm string) error
	Transact(userID uint, txType models.PiggyTransactionType, amount int64, password string) (*models.PiggyTransaction, error)
	GetTransactions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PiggyTransaction], error)
}

// RatingCount is the number of feedback items carrying one star rating.
type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// RatingsSummary aggregates feedback ratings for the owner dashboard.
type RatingsSummary struct {
	Average float64       `json:"average"`
	Total   int64         `json:"total"`
	Counts  []RatingCount `json:"counts"`
}

// FeedbackServicer defines the contract for feedback business logic.
type FeedbackServicer interface {
	Create(name, email, feedback string, rating int, userID *uint) (*models.FeedbackItem, error)
	List() ([]models.FeedbackItem, error)
	Summary() (*RatingsSummary, error)
	Update(id uint, feedback *string, rating *int) (*models.FeedbackItem, error)
	Delete(id uint) error
}

// LoginEventServicer records and lists login attempts.
type LoginEventServicer interface {
	Record(email string, userType models.UserRole, loginTime time.Time, success bool)
	Ingest(email string, userType models.UserRole, loginTime time.Time) (*models.LoginEvent, error)
	ListSuccessful(page pagination.PageRequest) (*pagination.PageResponse[models.LoginEvent], error)
	ListFailed(page pagination.PageRequest) (*pagination.PageResponse[models.LoginEvent], error)
}

// AdminServicer defines the contract for the owner dashboard.
type AdminServicer interface {
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	CreateDeletionRequest(userID uint, reason string) (*models.DeletionRequest, error)
	ListDeletionRequests(status *models.DeletionRequestStatus) ([]models.DeletionRequest, error)
	ApproveDeletionRequest(requestID uint) error
	DenyDeletionRequest(requestID uint) (*models.DeletionRequest, error)
}
