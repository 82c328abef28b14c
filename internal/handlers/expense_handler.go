package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
	"spendsmart/internal/services"
)

// ExpenseHandler handles expense-ledger requests.
type ExpenseHandler struct {
	expenses services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// AddExpenseRequest represents the add-expense payload. Amount is in cents.
type AddExpenseRequest struct {
	Amount      int64  `json:"amount" binding:"required,min=1"`
	Category    string `json:"category" binding:"required,expense_category"`
	Description string `json:"description" binding:"required,max=255"`
	Date        string `json:"date" binding:"required"`
}

// SetMonthlyIncomeRequest sets the income for one calendar month, in cents.
// A pointer keeps a zero amount distinguishable from an absent field.
type SetMonthlyIncomeRequest struct {
	Month  int    `json:"month" binding:"required,min=1,max=12"`
	Year   int    `json:"year" binding:"required,min=2000,max=2200"`
	Amount *int64 `json:"amount" binding:"required,min=0"`
}

// listExpensesQuery holds pagination plus optional ledger filters.
type listExpensesQuery struct {
	pagination.PageRequest
	Month    *int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year     *int    `form:"year" binding:"omitempty,min=2000,max=2200"`
	Category *string `form:"category" binding:"omitempty,expense_category"`
}

// AddExpense records a new expense.
// @Summary     Add expense
// @Description Record a new expense for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddExpenseRequest true "Expense data"
// @Success     201 {object} models.Expense "Created expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /expenses [post]
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenses.AddExpense(userID, req.Amount, models.ExpenseCategory(req.Category), req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// ListExpenses returns the user's expenses, newest first.
// @Summary     List expenses
// @Description List the authenticated user's expenses with optional month/year/category filters
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Param       month query int false "Filter by month (1-12)"
// @Param       year query int false "Filter by year"
// @Param       category query string false "Filter by category"
// @Success     200 {object} pagination.PageResponse[models.Expense]
// @Failure     400 {object} ErrorResponse "Invalid filters"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ExpenseFilter{Month: query.Month, Year: query.Year}
	if query.Category != nil {
		category := models.ExpenseCategory(*query.Category)
		filter.Category = &category
	}

	page, err := h.expenses.GetUserExpenses(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeleteExpense removes one of the user's expenses.
// @Summary     Delete expense
// @Tags        expenses
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenses.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSummary returns derived aggregates for the requested month.
// @Summary     Expense summary
// @Description Monthly and yearly totals, category breakdown, highest category with a spending suggestion, and the highest-spend month of the year
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Month 1-12 (defaults to current)"
// @Success     200 {object} services.ExpenseSummary
// @Router      /expenses/summary [get]
func (h *ExpenseHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	year, err := intQuery(c, "year", now.Year())
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := intQuery(c, "month", int(now.Month()))
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.expenses.GetSummary(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SetMonthlyIncome records the income for one calendar month, replacing any
// previous value for that month.
// @Summary     Set monthly income
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetMonthlyIncomeRequest true "Month, year and amount"
// @Success     200 {object} models.MonthlyIncome
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /income/monthly [put]
func (h *ExpenseHandler) SetMonthlyIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetMonthlyIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.expenses.SetMonthlyIncome(userID, req.Month, req.Year, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly_income": income})
}

// ListMonthlyIncomes lists the per-month incomes recorded for a year.
// @Summary     List monthly incomes
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Success     200 {array} models.MonthlyIncome
// @Router      /income/monthly [get]
func (h *ExpenseHandler) ListMonthlyIncomes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := intQuery(c, "year", time.Now().Year())
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomes, err := h.expenses.GetMonthlyIncomes(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly_incomes": incomes})
}

// parseDate accepts dates in RFC 3339 or plain YYYY-MM-DD form.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be RFC 3339 or YYYY-MM-DD")
	}
	return t, nil
}

// intQuery parses an optional integer query parameter.
func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
	}
	return value, nil
}
