package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/models"
)

// goalService handles goal-tracker business logic: goals, progress, the daily
// login streak, and badge awards.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal adds a new savings goal starting at zero progress.
func (s *goalService) CreateGoal(userID uint, title string, targetAmount int64, description string, startDate, endDate time.Time) (*models.Goal, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if endDate.Before(startDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	goal := &models.Goal{
		UserID:       userID,
		Title:        title,
		TargetAmount: targetAmount,
		StartDate:    startDate,
		EndDate:      endDate,
		Description:  description,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals lists the user's goals, newest first.
func (s *goalService) GetUserGoals(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// AddProgress increases a goal's progress. The first time progress reaches the
// target the goal is marked with the completion badge; the transition is not
// reversible. Completed-goal-count badges are re-evaluated in the same
// transaction, so progress and awards commit together.
func (s *goalService) AddProgress(userID, goalID uint, amount int64) (*models.Goal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	var goal models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&goal, goalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		wasComplete := goal.IsComplete()
		goal.CurrentAmount += amount

		if !wasComplete && goal.IsComplete() {
			badge := models.GoalCompletionBadge
			goal.Badge = &badge
		}

		if err := tx.Save(&goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if !wasComplete && goal.IsComplete() {
			return s.evaluateGoalBadges(tx, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

// DeleteGoal removes a goal owned by the user.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Goal{}, goalID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// civilDate truncates t to its calendar date in UTC.
func civilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckStreak advances the user's login streak for the calendar day of now.
// Same-day checks are no-ops. A last check exactly one day earlier increments
// the streak; any larger gap resets it to 1, as does the first observation.
// Streak milestones award their badges exactly once.
func (s *goalService) CheckStreak(userID uint, now time.Time) (*StreakStatus, error) {
	today := civilDate(now)

	var streak models.Streak
	err := s.db.Where("user_id = ?", userID).First(&streak).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		streak = models.Streak{UserID: userID, Days: 1, LastCheck: today}
		if err := s.db.Create(&streak).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		lastCheck := civilDate(streak.LastCheck)
		if lastCheck.Equal(today) {
			return &StreakStatus{Days: streak.Days, LastCheck: today.Format("2006-01-02")}, nil
		}
		if lastCheck.AddDate(0, 0, 1).Equal(today) {
			streak.Days++
		} else {
			streak.Days = 1
		}
		streak.LastCheck = today
		if err := s.db.Save(&streak).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	status := &StreakStatus{Days: streak.Days, LastCheck: today.Format("2006-01-02")}

	for _, badge := range models.StreakBadges {
		if streak.Days >= badge.Threshold {
			awarded, err := s.awardBadge(s.db, userID, badge.Name)
			if err != nil {
				return nil, err
			}
			if awarded {
				status.NewBadges = append(status.NewBadges, badge.Name)
			}
		}
	}

	return status, nil
}

// GetStreak returns the user's current streak state, zero-valued when the
// user has never been observed.
func (s *goalService) GetStreak(userID uint) (*models.Streak, error) {
	var streak models.Streak
	if err := s.db.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Streak{UserID: userID}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &streak, nil
}

// GetBadges lists the user's earned badges in award order.
func (s *goalService) GetBadges(userID uint) ([]models.BadgeAward, error) {
	var badges []models.BadgeAward
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&badges).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return badges, nil
}

// awardBadge records a badge award if not already held. Returns whether a new
// award was created.
func (s *goalService) awardBadge(db *gorm.DB, userID uint, name string) (bool, error) {
	var count int64
	if err := db.Model(&models.BadgeAward{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return false, nil
	}

	if err := db.Create(&models.BadgeAward{UserID: userID, Name: name}).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return true, nil
}

// evaluateGoalBadges awards every completed-goal-count badge whose threshold
// the user has reached and does not already hold.
func (s *goalService) evaluateGoalBadges(db *gorm.DB, userID uint) error {
	var completed int64
	if err := db.Model(&models.Goal{}).
		Where("user_id = ? AND current_amount >= target_amount", userID).
		Count(&completed).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, badge := range models.GoalBadges {
		if completed >= int64(badge.Threshold) {
			if _, err := s.awardBadge(db, userID, badge.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
