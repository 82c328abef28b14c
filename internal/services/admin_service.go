package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/logger"
	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
)

// adminService handles the owner dashboard: user listing and the account
// deletion workflow.
type adminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(db *gorm.DB) AdminServicer {
	return &adminService{db: db}
}

// ListUsers returns all registered users, newest first.
func (s *adminService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	base := s.db.Model(&models.User{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []models.User
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(users, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// CreateDeletionRequest files an account deletion request for the user.
func (s *adminService) CreateDeletionRequest(userID uint, reason string) (*models.DeletionRequest, error) {
	if reason == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "reason is required")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	request := &models.DeletionRequest{
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Reason:      reason,
		RequestDate: time.Now(),
		Status:      models.DeletionPending,
	}

	if err := s.db.Create(request).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return request, nil
}

// ListDeletionRequests lists deletion requests, optionally filtered by status.
func (s *adminService) ListDeletionRequests(status *models.DeletionRequestStatus) ([]models.DeletionRequest, error) {
	q := s.db.Order("request_date DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var requests []models.DeletionRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return requests, nil
}

// ApproveDeletionRequest erases the requesting user's account and every
// per-user record in one database transaction. Deletes are unscoped: this is
// an erasure workflow, not an archival one.
func (s *adminService) ApproveDeletionRequest(requestID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var request models.DeletionRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrDeletionRequestNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if request.Status != models.DeletionPending {
			return apperrors.ErrDeletionRequestResolved
		}

		userID := request.UserID
		perUser := []interface{}{
			&models.Expense{},
			&models.MonthlyIncome{},
			&models.Goal{},
			&models.BadgeAward{},
			&models.Streak{},
			&models.PiggyTransaction{},
			&models.PiggyBank{},
		}
		for _, model := range perUser {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Unscoped().Delete(&models.User{}, userID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&request).Update("status", models.DeletionApproved).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		logger.Get().Infow("account deletion approved",
			"request_id", requestID,
			"user_id", userID,
			"email", request.UserEmail,
		)
		return nil
	})
}

// DenyDeletionRequest marks a pending request as denied without touching the
// user's records.
func (s *adminService) DenyDeletionRequest(requestID uint) (*models.DeletionRequest, error) {
	var request models.DeletionRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeletionRequestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if request.Status != models.DeletionPending {
		return nil, apperrors.ErrDeletionRequestResolved
	}

	if err := s.db.Model(&request).Update("status", models.DeletionDenied).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	request.Status = models.DeletionDenied

	return &request, nil
}
