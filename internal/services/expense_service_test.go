package services

import (
	"testing"
	"time"

	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
	"spendsmart/internal/testutil"
)

func TestAddExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.AddExpense(user.ID, 2500, models.CategoryFood, "Groceries", time.Now())
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		if expense.Amount != 2500 {
			t.Errorf("expected amount 2500, got %d", expense.Amount)
		}
		if expense.Category != models.CategoryFood {
			t.Errorf("expected category Food, got %s", expense.Category)
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddExpense(user.ID, 0, models.CategoryFood, "Groceries", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.AddExpense(user.ID, -100, models.CategoryFood, "Groceries", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddExpense(user.ID, 2500, models.CategoryFood, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddExpense(user.ID, 2500, "Gambling", "Casino night", time.Now())
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("removes_exactly_one_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		keep := testutil.CreateTestExpense(t, db, user.ID, models.CategoryFood, 1000)
		victim := testutil.CreateTestExpense(t, db, user.ID, models.CategoryShopping, 2000)

		testutil.AssertNoError(t, svc.DeleteExpense(user.ID, victim.ID))

		var remaining []models.Expense
		if err := db.Where("user_id = ?", user.ID).Find(&remaining).Error; err != nil {
			t.Fatalf("failed to list expenses: %v", err)
		}
		if len(remaining) != 1 {
			t.Fatalf("expected 1 remaining expense, got %d", len(remaining))
		}
		if remaining[0].ID != keep.ID || remaining[0].Amount != keep.Amount {
			t.Error("surviving expense should be unchanged")
		}
	})

	t.Run("other_users_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user2.ID, models.CategoryFood, 1000)

		err := svc.DeleteExpense(user1.ID, expense.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})

	t.Run("missing_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteExpense(user.ID, 9999)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestGetUserExpenses(t *testing.T) {
	t.Run("filters_by_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFood, 1000)
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFood, 2000)
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryHousing, 90000)

		category := models.CategoryFood
		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserExpenses(user.ID, page, ExpenseFilter{Category: &category})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 food expenses, got %d", result.TotalItems)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user1.ID, models.CategoryFood, 1000)
		testutil.CreateTestExpense(t, db, user2.ID, models.CategoryFood, 2000)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserExpenses(user1.ID, page, ExpenseFilter{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 expense, got %d", result.TotalItems)
		}
	})
}

func TestGetSummary(t *testing.T) {
	t.Run("category_sums_match_inputs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
		testutil.CreateTestExpenseOnDate(t, db, user.ID, models.CategoryFood, 1000, date)
		testutil.CreateTestExpenseOnDate(t, db, user.ID, models.CategoryFood, 2500, date)
		testutil.CreateTestExpenseOnDate(t, db, user.ID, models.CategoryHousing, 90000, date)

		summary, err := svc.GetSummary(user.ID, 2025, 3)
		testutil.AssertNoError(t, err)

		if summary.MonthlyTotal != 93500 {
			t.Errorf("expected monthly total 93500, got %d", summary.MonthlyTotal)
		}

		totals := map[models.ExpenseCategory]int64{}
		for _, ct := range summary.CategoryBreakdown {
			totals[ct.Category] = ct.Total
		}
		if totals[models.CategoryFood] != 3500 {
			t.Errorf("expected Food total 3500, got %d", totals[models.CategoryFood])
		}
		if totals[models.CategoryHousing] != 90000 {
			t.Errorf("expected Housing total 90000, got %d", totals[models.CategoryHousing])
		}

		if summary.HighestCategory != string(models.CategoryHousing) {
			t.Errorf("expected highest category Housing, got %s", summary.HighestCategory)
		}
		if summary.Suggestion == "" {
			t.Error("expected a savings suggestion for the highest category")
		}
	})

	t.Run("finds_highest_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		jan := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
		jul := time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestExpenseOnDate(t, db, user.ID, models.CategoryFood, 1000, jan)
		testutil.CreateTestExpenseOnDate(t, db, user.ID, models.CategoryShopping, 50000, jul)

		summary, err := svc.GetSummary(user.ID, 2025, 1)
		testutil.AssertNoError(t, err)

		if summary.HighestMonth == nil {
			t.Fatal("expected a highest month")
		}
		if summary.HighestMonth.Month != 7 {
			t.Errorf("expected July (7), got %d", summary.HighestMonth.Month)
		}
		if summary.HighestMonth.Total != 50000 {
			t.Errorf("expected July total 50000, got %d", summary.HighestMonth.Total)
		}
		if summary.YearlyTotal != 51000 {
			t.Errorf("expected yearly total 51000, got %d", summary.YearlyTotal)
		}
	})

	t.Run("empty_ledger_yields_zeroed_aggregates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.GetSummary(user.ID, 2025, 1)
		testutil.AssertNoError(t, err)

		if summary.MonthlyTotal != 0 || summary.YearlyTotal != 0 {
			t.Error("expected zero totals for empty ledger")
		}
		if len(summary.CategoryBreakdown) != 0 {
			t.Error("expected empty category breakdown")
		}
		if summary.HighestMonth != nil {
			t.Error("expected no highest month")
		}
		if summary.HighestCategory != "" {
			t.Error("expected no highest category")
		}
	})
}

func TestMonthlyIncome(t *testing.T) {
	t.Run("upserts_per_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetMonthlyIncome(user.ID, 3, 2025, 400000)
		testutil.AssertNoError(t, err)
		_, err = svc.SetMonthlyIncome(user.ID, 3, 2025, 450000)
		testutil.AssertNoError(t, err)
		_, err = svc.SetMonthlyIncome(user.ID, 4, 2025, 400000)
		testutil.AssertNoError(t, err)

		incomes, err := svc.GetMonthlyIncomes(user.ID, 2025)
		testutil.AssertNoError(t, err)

		if len(incomes) != 2 {
			t.Fatalf("expected 2 income records, got %d", len(incomes))
		}
		if incomes[0].Month != 3 || incomes[0].Amount != 450000 {
			t.Errorf("expected March updated to 450000, got month %d amount %d", incomes[0].Month, incomes[0].Amount)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetMonthlyIncome(user.ID, 13, 2025, 400000)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
