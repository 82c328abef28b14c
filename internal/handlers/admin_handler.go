package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
	"spendsmart/internal/services"
)

// AdminHandler serves the owner dashboard: user listing, login history and
// the account deletion workflow.
type AdminHandler struct {
	admin  services.AdminServicer
	logins services.LoginEventServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin services.AdminServicer, logins services.LoginEventServicer) *AdminHandler {
	return &AdminHandler{admin: admin, logins: logins}
}

// RequestDeletionRequest files an account deletion request.
type RequestDeletionRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// RecordLoginRequest is the payload clients post to record a login event.
type RecordLoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	UserType  string `json:"user_type" binding:"required"`
	LoginTime string `json:"login_time" binding:"omitempty"`
}

// RecordLogin stores a client-reported login event.
// @Summary     Record login event
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body RecordLoginRequest true "Login event"
// @Success     201 {object} models.LoginEvent
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /logins [post]
func (h *AdminHandler) RecordLogin(c *gin.Context) {
	var req RecordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var loginTime time.Time
	if req.LoginTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.LoginTime)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "login_time must be RFC 3339"))
			return
		}
		loginTime = parsed
	}

	event, err := h.logins.Ingest(req.Email, models.UserRole(req.UserType), loginTime)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"login": event})
}

// ListUsers returns all registered users. Owner only.
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[models.User]
// @Failure     403 {object} ErrorResponse "Owner access required"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.admin.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListLogins returns the login history. Owner only.
// @Summary     List login events
// @Description Successful logins by default; pass status=failed for failed attempts
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "success (default) or failed"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[models.LoginEvent]
// @Router      /admin/logins [get]
func (h *AdminHandler) ListLogins(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var result *pagination.PageResponse[models.LoginEvent]
	var err error
	switch c.DefaultQuery("status", "success") {
	case "success":
		result, err = h.logins.ListSuccessful(page)
	case "failed":
		result, err = h.logins.ListFailed(page)
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be success or failed"))
		return
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RequestDeletion files a deletion request for the authenticated user's own
// account. The owner reviews it later.
// @Summary     Request account deletion
// @Tags        account
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RequestDeletionRequest true "Reason"
// @Success     201 {object} models.DeletionRequest
// @Router      /account/deletion-request [post]
func (h *AdminHandler) RequestDeletion(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RequestDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.admin.CreateDeletionRequest(userID, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"deletion_request": request})
}

// ListDeletionRequests lists deletion requests. Owner only.
// @Summary     List deletion requests
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "pending, approved or denied"
// @Success     200 {array} models.DeletionRequest
// @Router      /admin/deletion-requests [get]
func (h *AdminHandler) ListDeletionRequests(c *gin.Context) {
	var status *models.DeletionRequestStatus
	if raw := c.Query("status"); raw != "" {
		s := models.DeletionRequestStatus(raw)
		switch s {
		case models.DeletionPending, models.DeletionApproved, models.DeletionDenied:
			status = &s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be pending, approved or denied"))
			return
		}
	}

	requests, err := h.admin.ListDeletionRequests(status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletion_requests": requests})
}

// ApproveDeletionRequest erases the requesting user's account. Owner only.
// @Summary     Approve deletion request
// @Description Erase the user's account and all their records
// @Tags        admin
// @Security    BearerAuth
// @Param       id path int true "Request ID"
// @Success     204 "Account erased"
// @Failure     409 {object} ErrorResponse "Request already resolved"
// @Router      /admin/deletion-requests/{id}/approve [post]
func (h *AdminHandler) ApproveDeletionRequest(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.admin.ApproveDeletionRequest(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DenyDeletionRequest marks a deletion request denied. Owner only.
// @Summary     Deny deletion request
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Request ID"
// @Success     200 {object} models.DeletionRequest
// @Failure     409 {object} ErrorResponse "Request already resolved"
// @Router      /admin/deletion-requests/{id}/deny [post]
func (h *AdminHandler) DenyDeletionRequest(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	request, err := h.admin.DenyDeletionRequest(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletion_request": request})
}
