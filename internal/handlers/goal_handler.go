package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/services"
)

// GoalHandler handles savings goals, streaks and badges.
type GoalHandler struct {
	goals services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goals services.GoalServicer) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// CreateGoalRequest represents the create-goal payload. TargetAmount is in cents.
type CreateGoalRequest struct {
	Title        string `json:"title" binding:"required,max=100"`
	TargetAmount int64  `json:"target_amount" binding:"required,min=1"`
	Description  string `json:"description" binding:"max=255"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
}

// AddProgressRequest adds savings progress to a goal, in cents.
type AddProgressRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// CreateGoal records a new savings goal.
// @Summary     Create goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal data"
// @Success     201 {object} models.Goal
// @Failure     400 {object} ErrorResponse "Invalid input or date range"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goals.CreateGoal(userID, req.Title, req.TargetAmount, req.Description, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// ListGoals returns the user's goals.
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Goal
// @Router      /goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goals.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// AddProgress adds saved money to a goal.
// @Summary     Add goal progress
// @Description Add progress to a goal; reaching the target assigns a completion badge
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body AddProgressRequest true "Amount in cents"
// @Success     200 {object} models.Goal
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [post]
func (h *GoalHandler) AddProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goals.AddProgress(userID, goalID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal removes one of the user's goals.
// @Summary     Delete goal
// @Tags        goals
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goals.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckStreak advances the user's daily streak for today.
// @Summary     Check streak
// @Description Advance the daily streak; same-day checks are no-ops
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.StreakStatus
// @Router      /streak/check [post]
func (h *GoalHandler) CheckStreak(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.goals.CheckStreak(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetStreak returns the current streak without advancing it.
// @Summary     Get streak
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Streak
// @Router      /streak [get]
func (h *GoalHandler) GetStreak(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	streak, err := h.goals.GetStreak(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

// ListBadges returns the user's earned badges.
// @Summary     List badges
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.BadgeAward
// @Router      /badges [get]
func (h *GoalHandler) ListBadges(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	badges, err := h.goals.GetBadges(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}
