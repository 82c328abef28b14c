package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/services"
)

// FeedbackHandler handles feedback submission and the owner's review tools.
type FeedbackHandler struct {
	feedback services.FeedbackServicer
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedback services.FeedbackServicer) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// CreateFeedbackRequest represents a feedback submission.
type CreateFeedbackRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Feedback string `json:"feedback" binding:"required,max=2000"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
}

// UpdateFeedbackRequest updates the text and/or rating of a feedback item.
type UpdateFeedbackRequest struct {
	Feedback *string `json:"feedback" binding:"omitempty,max=2000"`
	Rating   *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// Create records a feedback submission. Submission is open to visitors; when
// the caller is authenticated the item is linked to their account.
// @Summary     Submit feedback
// @Tags        feedback
// @Accept      json
// @Produce     json
// @Param       request body CreateFeedbackRequest true "Feedback data"
// @Success     201 {object} models.FeedbackItem
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var userID *uint
	if id, exists := c.Get("userID"); exists {
		uid := id.(uint)
		userID = &uid
	}

	item, err := h.feedback.Create(req.Name, req.Email, req.Feedback, req.Rating, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"feedback": item})
}

// List returns all feedback, newest first. Owner only.
// @Summary     List feedback
// @Tags        feedback
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FeedbackItem
// @Failure     403 {object} ErrorResponse "Owner access required"
// @Router      /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	items, err := h.feedback.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": items})
}

// Summary returns the aggregated ratings. Owner only.
// @Summary     Ratings summary
// @Tags        feedback
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.RatingsSummary
// @Failure     403 {object} ErrorResponse "Owner access required"
// @Router      /feedback/summary [get]
func (h *FeedbackHandler) Summary(c *gin.Context) {
	summary, err := h.feedback.Summary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Update modifies a feedback item. Owner only.
// @Summary     Update feedback
// @Tags        feedback
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Feedback ID"
// @Param       request body UpdateFeedbackRequest true "Fields to update"
// @Success     200 {object} models.FeedbackItem
// @Failure     404 {object} ErrorResponse "Feedback not found"
// @Router      /feedback/{id} [put]
func (h *FeedbackHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.feedback.Update(id, req.Feedback, req.Rating)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": item})
}

// Delete removes a feedback item. Owner only.
// @Summary     Delete feedback
// @Tags        feedback
// @Security    BearerAuth
// @Param       id path int true "Feedback ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Feedback not found"
// @Router      /feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.feedback.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}
