package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
	"spendsmart/internal/services"
)

// PiggyBankHandler handles the piggy bank ledger.
type PiggyBankHandler struct {
	piggy services.PiggyBankServicer
}

// NewPiggyBankHandler creates a new PiggyBankHandler.
func NewPiggyBankHandler(piggy services.PiggyBankServicer) *PiggyBankHandler {
	return &PiggyBankHandler{piggy: piggy}
}

// SetPiggyPasswordRequest sets or replaces the transaction password.
type SetPiggyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm" binding:"required"`
}

// PiggyTransactRequest appends a deposit or withdrawal, in cents.
type PiggyTransactRequest struct {
	Type     string `json:"type" binding:"required,piggy_transaction_type"`
	Amount   int64  `json:"amount" binding:"required,min=1"`
	Password string `json:"password"`
}

// GetState returns the piggy bank state converted for display.
// @Summary     Piggy bank state
// @Description Balance (stored in USD cents) converted to the requested display currency
// @Tags        piggybank
// @Produce     json
// @Security    BearerAuth
// @Param       currency query string false "Display currency (USD, EUR, GBP, INR, JPY)"
// @Success     200 {object} services.PiggyBankState
// @Failure     400 {object} ErrorResponse "Unknown currency"
// @Router      /piggybank [get]
func (h *PiggyBankHandler) GetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := h.piggy.GetState(userID, c.Query("currency"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// SetPassword sets the piggy bank transaction password.
// @Summary     Set piggy bank password
// @Tags        piggybank
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetPiggyPasswordRequest true "New password and confirmation"
// @Success     200 {object} map[string]string
// @Failure     400 {object} ErrorResponse "Mismatch or too short"
// @Router      /piggybank/password [put]
func (h *PiggyBankHandler) SetPassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetPiggyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.piggy.SetPassword(userID, req.Password, req.Confirm); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Piggy bank password set"})
}

// Transact appends a deposit or withdrawal.
// @Summary     Deposit or withdraw
// @Description Append a ledger entry and update the balance atomically
// @Tags        piggybank
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PiggyTransactRequest true "Transaction data"
// @Success     201 {object} models.PiggyTransaction
// @Failure     400 {object} ErrorResponse "Invalid amount or insufficient funds"
// @Failure     401 {object} ErrorResponse "Wrong piggy bank password"
// @Router      /piggybank/transactions [post]
func (h *PiggyBankHandler) Transact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PiggyTransactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.piggy.Transact(userID, models.PiggyTransactionType(req.Type), req.Amount, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": entry})
}

// ListTransactions lists the piggy bank ledger in chronological order.
// @Summary     List piggy bank transactions
// @Tags        piggybank
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[models.PiggyTransaction]
// @Router      /piggybank/transactions [get]
func (h *PiggyBankHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.piggy.GetTransactions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
