package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendsmart/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestOwner creates a user with the owner role.
func CreateTestOwner(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("role", models.RoleOwner).Error; err != nil {
		t.Fatalf("failed to promote test owner: %v", err)
	}
	user.Role = models.RoleOwner
	return user
}

// CreateTestExpense creates an expense with the given category and amount (in cents).
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, category models.ExpenseCategory, amount int64) *models.Expense {
	t.Helper()
	return CreateTestExpenseOnDate(t, db, userID, category, amount, time.Now())
}

// CreateTestExpenseOnDate creates an expense dated to the given day.
func CreateTestExpenseOnDate(t *testing.T, db *gorm.DB, userID uint, category models.ExpenseCategory, amount int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Date:        date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestGoal creates a goal with the given target amount (in cents) and
// zero progress. The goal runs from today until a year from now.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, targetAmount int64) *models.Goal {
	t.Helper()

	now := time.Now()
	goal := &models.Goal{
		UserID:       userID,
		Title:        fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: targetAmount,
		StartDate:    now,
		EndDate:      now.AddDate(1, 0, 0),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestPiggyBank creates a piggy bank with the given balance (in cents)
// and no password.
func CreateTestPiggyBank(t *testing.T, db *gorm.DB, userID uint, balance int64) *models.PiggyBank {
	t.Helper()

	bank := &models.PiggyBank{
		UserID:  userID,
		Balance: balance,
	}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("failed to create test piggy bank: %v", err)
	}
	return bank
}

// CreateTestStreak creates a streak record with the given day count and last
// check date.
func CreateTestStreak(t *testing.T, db *gorm.DB, userID uint, days int, lastCheck time.Time) *models.Streak {
	t.Helper()

	streak := &models.Streak{
		UserID:    userID,
		Days:      days,
		LastCheck: lastCheck,
	}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("failed to create test streak: %v", err)
	}
	return streak
}

// CreateTestFeedback creates a feedback item with the given rating.
func CreateTestFeedback(t *testing.T, db *gorm.DB, userID *uint, rating int) *models.FeedbackItem {
	t.Helper()

	n := nextID()
	item := &models.FeedbackItem{
		Name:     fmt.Sprintf("Feedback User %d", n),
		Email:    fmt.Sprintf("feedback%d@test.com", n),
		Feedback: "Great app, would save again.",
		Rating:   rating,
		UserID:   userID,
		Date:     time.Now(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test feedback: %v", err)
	}
	return item
}

// CreateTestDeletionRequest files a pending deletion request for the user.
func CreateTestDeletionRequest(t *testing.T, db *gorm.DB, user *models.User) *models.DeletionRequest {
	t.Helper()

	request := &models.DeletionRequest{
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Reason:      "No longer needed",
		RequestDate: time.Now(),
		Status:      models.DeletionPending,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("failed to create test deletion request: %v", err)
	}
	return request
}
