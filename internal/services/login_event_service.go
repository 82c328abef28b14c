package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/logger"
	"spendsmart/internal/models"
	"spendsmart/internal/pagination"
)

// loginEventService records login attempts.
type loginEventService struct {
	db *gorm.DB
}

// NewLoginEventService creates a new LoginEventServicer.
func NewLoginEventService(db *gorm.DB) LoginEventServicer {
	return &loginEventService{db: db}
}

// Record appends a login event. Errors are logged but never propagate so that
// event recording cannot disrupt the login flow itself.
func (s *loginEventService) Record(email string, userType models.UserRole, loginTime time.Time, success bool) {
	if loginTime.IsZero() {
		loginTime = time.Now()
	}

	event := &models.LoginEvent{
		Email:     email,
		UserType:  userType,
		LoginTime: loginTime,
		Success:   success,
	}

	if err := s.db.Create(event).Error; err != nil {
		logger.Get().Errorw("failed to record login event",
			"error", err,
			"email", email,
			"user_type", userType,
			"success", success,
		)
	}
}

// Ingest stores a login event posted by a client and returns the stored row.
// Unlike Record, persistence failures propagate to the caller.
func (s *loginEventService) Ingest(email string, userType models.UserRole, loginTime time.Time) (*models.LoginEvent, error) {
	switch userType {
	case models.RoleUser, models.RoleOwner:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_type must be user or owner")
	}

	if loginTime.IsZero() {
		loginTime = time.Now()
	}

	event := &models.LoginEvent{
		Email:     email,
		UserType:  userType,
		LoginTime: loginTime,
		Success:   true,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return event, nil
}

// ListSuccessful returns successful login events, newest first, with entries
// sharing an identical email and login time collapsed to one.
func (s *loginEventService) ListSuccessful(page pagination.PageRequest) (*pagination.PageResponse[models.LoginEvent], error) {
	return s.list(page, true)
}

// ListFailed returns failed login attempts, newest first.
func (s *loginEventService) ListFailed(page pagination.PageRequest) (*pagination.PageResponse[models.LoginEvent], error) {
	return s.list(page, false)
}

func (s *loginEventService) list(page pagination.PageRequest, success bool) (*pagination.PageResponse[models.LoginEvent], error) {
	page.Defaults()

	base := s.db.Model(&models.LoginEvent{}).Where("success = ?", success)
	if success {
		// Collapse entries sharing an identical email and login time to one
		// row before counting, so totals and page boundaries line up.
		keep := s.db.Model(&models.LoginEvent{}).
			Select("MIN(id)").
			Where("success = ?", true).
			Group("email, login_time")
		base = s.db.Model(&models.LoginEvent{}).Where("id IN (?)", keep)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.LoginEvent
	if err := base.Scopes(pagination.Paginate(page)).
		Order("login_time DESC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}
