package models

import "time"

// PiggyTransactionType is the direction of a piggy bank transaction.
type PiggyTransactionType string

const (
	PiggyDeposit    PiggyTransactionType = "deposit"
	PiggyWithdrawal PiggyTransactionType = "withdrawal"
)

// ExchangeRates maps a display currency to its fixed USD exchange rate.
// The stored balance is always USD; conversion is presentation-only.
var ExchangeRates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"GBP": 0.79,
	"INR": 83.24,
	"JPY": 151.61,
}

// PiggyBank is a user's simulated savings account. The balance is stored in
// USD cents and must equal the sum of signed transaction amounts. An optional
// password (bcrypt hash) gates mutating operations.
type PiggyBank struct {
	Base
	UserID       uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	Balance      int64  `gorm:"type:bigint;not null;default:0" json:"balance"`
	PasswordHash string `json:"-"`

	Transactions []PiggyTransaction `gorm:"foreignKey:PiggyBankID" json:"transactions,omitempty"`
}

// HasPassword reports whether a transaction password has been set.
func (p *PiggyBank) HasPassword() bool {
	return p.PasswordHash != ""
}

// PiggyTransaction is one append-only entry in a piggy bank's ledger.
// Amount is always positive; Type carries the sign.
type PiggyTransaction struct {
	Base
	PiggyBankID uint                 `gorm:"not null;index" json:"piggy_bank_id"`
	UserID      uint                 `gorm:"not null;index" json:"user_id"`
	Type        PiggyTransactionType `gorm:"not null" json:"type"`
	Amount      int64                `gorm:"type:bigint;not null" json:"amount"`
	Date        time.Time            `gorm:"not null" json:"date"`
}
