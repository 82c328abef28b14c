package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
)

// spendingSuggestions maps each category to a fixed savings tip, surfaced
// alongside the highest-spending category.
var spendingSuggestions = map[models.ExpenseCategory]string{
	models.CategoryFood:           "Try meal prepping to reduce eating out expenses.",
	models.CategoryHousing:        "Consider negotiating your rent or refinancing your mortgage.",
	models.CategoryTransportation: "Use public transportation or carpooling when possible.",
	models.CategoryUtilities:      "Switch to energy-efficient appliances and bulbs.",
	models.CategoryEntertainment:  "Look for free local events or streaming service deals.",
	models.CategoryHealthcare:     "Check for generic medication options and preventive care.",
	models.CategoryShopping:       "Wait 24 hours before making non-essential purchases.",
	models.CategoryEducation:      "Research scholarships and financial aid options.",
	models.CategoryPersonalCare:   "DIY some of your personal care routines.",
	models.CategoryDebt:           "Focus on high-interest debt first and consider consolidation.",
	models.CategorySavings:        "Set up automatic transfers to your savings account.",
	models.CategoryOther:          "Review these expenses to see if they can be categorized or reduced.",
}

// expenseService handles expense-ledger business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// AddExpense appends a record to the user's ledger.
func (s *expenseService) AddExpense(userID uint, amount int64, category models.ExpenseCategory, description string, date time.Time) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !models.IsValidExpenseCategory(category) {
		return nil, apperrors.ErrInvalidCategory
	}
	if date.IsZero() {
		date = time.Now()
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserExpenses retrieves a paginated, filtered list of the user's expenses.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Year != nil {
		start := time.Date(*f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		if f.Month != nil {
			start = time.Date(*f.Year, time.Month(*f.Month), 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
		}
		q = q.Where("date >= ? AND date < ?", start, end)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	return q
}

// DeleteExpense removes a single expense owned by the user.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Expense{}, expenseID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// GetSummary recomputes the derived aggregates for the given month and year.
// An empty ledger yields zeroed aggregates.
func (s *expenseService) GetSummary(userID uint, year, month int) (*ExpenseSummary, error) {
	summary := &ExpenseSummary{CategoryBreakdown: []CategoryTotal{}}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthEnd).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.MonthlyTotal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, yearStart, yearEnd).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.YearlyTotal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Per-category totals across the whole ledger; the highest one drives
	// the savings suggestion.
	var byCategory []CategoryTotal
	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("category, SUM(amount) AS total").
		Group("category").
		Order("total DESC").
		Scan(&byCategory).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(byCategory) > 0 {
		summary.CategoryBreakdown = byCategory
		summary.HighestCategory = string(byCategory[0].Category)
		summary.Suggestion = spendingSuggestions[byCategory[0].Category]
	}

	// Highest-spending month of the requested year. Month extraction is done
	// in Go to stay portable across the postgres and sqlite drivers.
	var yearExpenses []models.Expense
	if err := s.db.Select("amount", "date").
		Where("user_id = ? AND date >= ? AND date < ?", userID, yearStart, yearEnd).
		Find(&yearExpenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthTotals := make(map[int]int64)
	for _, e := range yearExpenses {
		monthTotals[int(e.Date.Month())] += e.Amount
	}
	for m, total := range monthTotals {
		if summary.HighestMonth == nil || total > summary.HighestMonth.Total {
			summary.HighestMonth = &MonthTotal{Month: m, Year: year, Total: total}
		}
	}

	return summary, nil
}

// SetMonthlyIncome upserts the declared income for one calendar month.
func (s *expenseService) SetMonthlyIncome(userID uint, month, year int, amount int64) (*models.MonthlyIncome, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income cannot be negative")
	}

	income := &models.MonthlyIncome{
		UserID: userID,
		Month:  month,
		Year:   year,
		Amount: amount,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return income, nil
}

// GetMonthlyIncomes lists the user's declared incomes for a year.
func (s *expenseService) GetMonthlyIncomes(userID uint, year int) ([]models.MonthlyIncome, error) {
	var incomes []models.MonthlyIncome
	if err := s.db.Where("user_id = ? AND year = ?", userID, year).
		Order("month ASC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incomes, nil
}
