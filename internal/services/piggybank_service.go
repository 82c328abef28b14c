package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
)

// minPiggyPasswordLen is the minimum length of a piggy bank password.
const minPiggyPasswordLen = 4

// piggyBankService handles piggy-bank business logic.
type piggyBankService struct {
	db *gorm.DB
}

// NewPiggyBankService creates a new PiggyBankServicer.
func NewPiggyBankService(db *gorm.DB) PiggyBankServicer {
	return &piggyBankService{db: db}
}

// getOrCreate loads the user's piggy bank, creating an empty one on first use.
func (s *piggyBankService) getOrCreate(tx *gorm.DB, userID uint) (*models.PiggyBank, error) {
	var bank models.PiggyBank
	err := tx.Where("user_id = ?", userID).First(&bank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		bank = models.PiggyBank{UserID: userID}
		if err := tx.Create(&bank).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &bank, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bank, nil
}

// GetState returns the balance converted to the requested display currency.
// The stored balance is always USD cents; conversion is read-time only.
func (s *piggyBankService) GetState(userID uint, currency string) (*PiggyBankState, error) {
	if currency == "" {
		currency = "USD"
	}
	rate, ok := models.ExchangeRates[currency]
	if !ok {
		return nil, apperrors.ErrUnknownCurrency
	}

	bank, err := s.getOrCreate(s.db, userID)
	if err != nil {
		return nil, err
	}

	return &PiggyBankState{
		Balance:          bank.Balance,
		Currency:         currency,
		ConvertedBalance: float64(bank.Balance) / 100 * rate,
		HasPassword:      bank.HasPassword(),
	}, nil
}

// SetPassword stores a new transaction password, replacing any prior one.
func (s *piggyBankService) SetPassword(userID uint, password, confirm string) error {
	if password != confirm {
		return apperrors.ErrPiggyPasswordMismatch
	}
	if len(password) < minPiggyPasswordLen {
		return apperrors.ErrPiggyPasswordTooShort
	}

	bank, err := s.getOrCreate(s.db, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(bank).Update("password_hash", string(hash)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Transact appends a deposit or withdrawal and updates the balance in one
// database transaction. Rejections leave prior state untouched: non-positive
// amounts, a wrong password when one is set, and withdrawals exceeding the
// balance all fail before any write.
func (s *piggyBankService) Transact(userID uint, txType models.PiggyTransactionType, amount int64, password string) (*models.PiggyTransaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if txType != models.PiggyDeposit && txType != models.PiggyWithdrawal {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction type must be deposit or withdrawal")
	}

	var result *models.PiggyTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		bank, err := s.getOrCreate(tx, userID)
		if err != nil {
			return err
		}

		if bank.HasPassword() {
			if bcrypt.CompareHashAndPassword([]byte(bank.PasswordHash), []byte(password)) != nil {
				return apperrors.ErrPiggyPasswordWrong
			}
		}

		if txType == models.PiggyWithdrawal && amount > bank.Balance {
			return apperrors.ErrInsufficientFunds
		}

		entry := &models.PiggyTransaction{
			PiggyBankID: bank.ID,
			UserID:      userID,
			Type:        txType,
			Amount:      amount,
			Date:        time.Now(),
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		delta := amount
		if txType == models.PiggyWithdrawal {
			delta = -amount
		}
		if err := tx.Model(bank).Update("balance", bank.Balance+delta).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetTransactions lists the user's piggy bank ledger in chronological order.
func (s *piggyBankService) GetTransactions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PiggyTransaction], error) {
	page.Defaults()

	base := s.db.Model(&models.PiggyTransaction{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.PiggyTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
