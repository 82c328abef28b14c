// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spendsmart/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("piggy_transaction_type", validatePiggyTransactionType)
	}
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.IsValidExpenseCategory(models.ExpenseCategory(fl.Field().String()))
}

func validatePiggyTransactionType(fl validator.FieldLevel) bool {
	switch models.PiggyTransactionType(fl.Field().String()) {
	case models.PiggyDeposit, models.PiggyWithdrawal:
		return true
	}
	return false
}
