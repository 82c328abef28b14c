package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
	"spendsmart/internal/services"
	"spendsmart/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- mock services ---

type mockUserService struct {
	createUserFn            func(name, email, password string) (*models.User, error)
	getUserByEmailFn        func(email string) (*models.User, error)
	getUserByIDFn           func(id uint) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	attemptLoginFn          func(email, password string) (*models.User, error)
	setIncomeFn             func(userID uint, amount int64) (*models.User, error)
	resetPasswordFn         func(email, newPassword string) error
	storeRefreshTokenHashFn func(userID uint, tokenHash string) error
	getRefreshTokenHashFn   func(userID uint) (string, error)
	clearRefreshTokenFn     func(userID uint) error
}

func (m *mockUserService) CreateUser(name, email, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(name, email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) SetIncome(userID uint, amount int64) (*models.User, error) {
	if m.setIncomeFn != nil {
		return m.setIncomeFn(userID, amount)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ResetPassword(email, newPassword string) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(email, newPassword)
	}
	return nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID uint) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

func (m *mockUserService) ClearRefreshToken(userID uint) error {
	if m.clearRefreshTokenFn != nil {
		return m.clearRefreshTokenFn(userID)
	}
	return nil
}

func (m *mockUserService) EnsureOwner(email, password string) error { return nil }

type mockLoginEventService struct {
	recorded []models.LoginEvent
	ingestFn func(email string, userType models.UserRole, loginTime time.Time) (*models.LoginEvent, error)
}

func (m *mockLoginEventService) Ingest(email string, userType models.UserRole, loginTime time.Time) (*models.LoginEvent, error) {
	if m.ingestFn != nil {
		return m.ingestFn(email, userType, loginTime)
	}
	event := models.LoginEvent{Email: email, UserType: userType, LoginTime: loginTime, Success: true}
	m.recorded = append(m.recorded, event)
	return &event, nil
}

func (m *mockLoginEventService) Record(email string, userType models.UserRole, loginTime time.Time, success bool) {
	m.recorded = append(m.recorded, models.LoginEvent{
		Email:     email,
		UserType:  userType,
		LoginTime: loginTime,
		Success:   success,
	})
}

func (m *mockLoginEventService) ListSuccessful(page pagination.PageRequest) (*pagination.PageResponse[models.LoginEvent], error) {
	return pageOf(m.successes(), page), nil
}

func (m *mockLoginEventService) ListFailed(page pagination.PageRequest) (*pagination.PageResponse[models.LoginEvent], error) {
	var failed []models.LoginEvent
	for _, e := range m.recorded {
		if !e.Success {
			failed = append(failed, e)
		}
	}
	return pageOf(failed, page), nil
}

func (m *mockLoginEventService) successes() []models.LoginEvent {
	var out []models.LoginEvent
	for _, e := range m.recorded {
		if e.Success {
			out = append(out, e)
		}
	}
	return out
}

type mockGoalService struct {
	createGoalFn   func(userID uint, title string, targetAmount int64, description string, startDate, endDate time.Time) (*models.Goal, error)
	getUserGoalsFn func(userID uint) ([]models.Goal, error)
	addProgressFn  func(userID, goalID uint, amount int64) (*models.Goal, error)
	deleteGoalFn   func(userID, goalID uint) error
	checkStreakFn  func(userID uint, now time.Time) (*services.StreakStatus, error)
	getStreakFn    func(userID uint) (*models.Streak, error)
	getBadgesFn    func(userID uint) ([]models.BadgeAward, error)
}

func (m *mockGoalService) CreateGoal(userID uint, title string, targetAmount int64, description string, startDate, endDate time.Time) (*models.Goal, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(userID, title, targetAmount, description, startDate, endDate)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) GetUserGoals(userID uint) ([]models.Goal, error) {
	if m.getUserGoalsFn != nil {
		return m.getUserGoalsFn(userID)
	}
	return nil, nil
}

func (m *mockGoalService) AddProgress(userID, goalID uint, amount int64) (*models.Goal, error) {
	if m.addProgressFn != nil {
		return m.addProgressFn(userID, goalID, amount)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) DeleteGoal(userID, goalID uint) error {
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(userID, goalID)
	}
	return nil
}

func (m *mockGoalService) CheckStreak(userID uint, now time.Time) (*services.StreakStatus, error) {
	if m.checkStreakFn != nil {
		return m.checkStreakFn(userID, now)
	}
	return &services.StreakStatus{Days: 1}, nil
}

func (m *mockGoalService) GetStreak(userID uint) (*models.Streak, error) {
	if m.getStreakFn != nil {
		return m.getStreakFn(userID)
	}
	return &models.Streak{}, nil
}

func (m *mockGoalService) GetBadges(userID uint) ([]models.BadgeAward, error) {
	if m.getBadgesFn != nil {
		return m.getBadgesFn(userID)
	}
	return nil, nil
}

type mockExpenseService struct {
	addExpenseFn        func(userID uint, amount int64, category models.ExpenseCategory, description string, date time.Time) (*models.Expense, error)
	getUserExpensesFn   func(userID uint, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	deleteExpenseFn     func(userID, expenseID uint) error
	getSummaryFn        func(userID uint, year, month int) (*services.ExpenseSummary, error)
	setMonthlyIncomeFn  func(userID uint, month, year int, amount int64) (*models.MonthlyIncome, error)
	getMonthlyIncomesFn func(userID uint, year int) ([]models.MonthlyIncome, error)
}

func (m *mockExpenseService) AddExpense(userID uint, amount int64, category models.ExpenseCategory, description string, date time.Time) (*models.Expense, error) {
	if m.addExpenseFn != nil {
		return m.addExpenseFn(userID, amount, category, description, date)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	if m.getUserExpensesFn != nil {
		return m.getUserExpensesFn(userID, page, filter)
	}
	return pageOf([]models.Expense{}, page), nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID uint) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

func (m *mockExpenseService) GetSummary(userID uint, year, month int) (*services.ExpenseSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID, year, month)
	}
	return &services.ExpenseSummary{}, nil
}

func (m *mockExpenseService) SetMonthlyIncome(userID uint, month, year int, amount int64) (*models.MonthlyIncome, error) {
	if m.setMonthlyIncomeFn != nil {
		return m.setMonthlyIncomeFn(userID, month, year, amount)
	}
	return &models.MonthlyIncome{}, nil
}

func (m *mockExpenseService) GetMonthlyIncomes(userID uint, year int) ([]models.MonthlyIncome, error) {
	if m.getMonthlyIncomesFn != nil {
		return m.getMonthlyIncomesFn(userID, year)
	}
	return nil, nil
}

type mockPiggyBankService struct {
	getStateFn        func(userID uint, currency string) (*services.PiggyBankState, error)
	setPasswordFn     func(userID uint, password, confirm string) error
	transactFn        func(userID uint, txType models.PiggyTransactionType, amount int64, password string) (*models.PiggyTransaction, error)
	getTransactionsFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PiggyTransaction], error)
}

func (m *mockPiggyBankService) GetState(userID uint, currency string) (*services.PiggyBankState, error) {
	if m.getStateFn != nil {
		return m.getStateFn(userID, currency)
	}
	return &services.PiggyBankState{Currency: "USD"}, nil
}

func (m *mockPiggyBankService) SetPassword(userID uint, password, confirm string) error {
	if m.setPasswordFn != nil {
		return m.setPasswordFn(userID, password, confirm)
	}
	return nil
}

func (m *mockPiggyBankService) Transact(userID uint, txType models.PiggyTransactionType, amount int64, password string) (*models.PiggyTransaction, error) {
	if m.transactFn != nil {
		return m.transactFn(userID, txType, amount, password)
	}
	return &models.PiggyTransaction{}, nil
}

func (m *mockPiggyBankService) GetTransactions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PiggyTransaction], error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(userID, page)
	}
	return pageOf([]models.PiggyTransaction{}, page), nil
}

type mockFeedbackService struct {
	createFn  func(name, email, feedback string, rating int, userID *uint) (*models.FeedbackItem, error)
	listFn    func() ([]models.FeedbackItem, error)
	summaryFn func() (*services.RatingsSummary, error)
	updateFn  func(id uint, feedback *string, rating *int) (*models.FeedbackItem, error)
	deleteFn  func(id uint) error
}

func (m *mockFeedbackService) Summary() (*services.RatingsSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn()
	}
	return &services.RatingsSummary{}, nil
}

func (m *mockFeedbackService) Create(name, email, feedback string, rating int, userID *uint) (*models.FeedbackItem, error) {
	if m.createFn != nil {
		return m.createFn(name, email, feedback, rating, userID)
	}
	return &models.FeedbackItem{}, nil
}

func (m *mockFeedbackService) List() ([]models.FeedbackItem, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil, nil
}

func (m *mockFeedbackService) Update(id uint, feedback *string, rating *int) (*models.FeedbackItem, error) {
	if m.updateFn != nil {
		return m.updateFn(id, feedback, rating)
	}
	return &models.FeedbackItem{}, nil
}

func (m *mockFeedbackService) Delete(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockAdminService struct {
	listUsersFn              func(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	createDeletionRequestFn  func(userID uint, reason string) (*models.DeletionRequest, error)
	listDeletionRequestsFn   func(status *models.DeletionRequestStatus) ([]models.DeletionRequest, error)
	approveDeletionRequestFn func(requestID uint) error
	denyDeletionRequestFn    func(requestID uint) (*models.DeletionRequest, error)
}

func (m *mockAdminService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(page)
	}
	return pageOf([]models.User{}, page), nil
}

func (m *mockAdminService) CreateDeletionRequest(userID uint, reason string) (*models.DeletionRequest, error) {
	if m.createDeletionRequestFn != nil {
		return m.createDeletionRequestFn(userID, reason)
	}
	return &models.DeletionRequest{}, nil
}

func (m *mockAdminService) ListDeletionRequests(status *models.DeletionRequestStatus) ([]models.DeletionRequest, error) {
	if m.listDeletionRequestsFn != nil {
		return m.listDeletionRequestsFn(status)
	}
	return nil, nil
}

func (m *mockAdminService) ApproveDeletionRequest(requestID uint) error {
	if m.approveDeletionRequestFn != nil {
		return m.approveDeletionRequestFn(requestID)
	}
	return nil
}

func (m *mockAdminService) DenyDeletionRequest(requestID uint) (*models.DeletionRequest, error) {
	if m.denyDeletionRequestFn != nil {
		return m.denyDeletionRequestFn(requestID)
	}
	return &models.DeletionRequest{}, nil
}

func pageOf[T any](data []T, page pagination.PageRequest) *pagination.PageResponse[T] {
	page.Defaults()
	result := pagination.NewPageResponse(data, page.Page, page.PageSize, int64(len(data)))
	return &result
}

// --- test helpers ---

func injectUser(uid uint, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Set("role", role)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
