package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/models"
)

// feedbackService handles feedback business logic. The relational store is
// the single persistence path for feedback items.
type feedbackService struct {
	db *gorm.DB
}

// NewFeedbackService creates a new FeedbackServicer.
func NewFeedbackService(db *gorm.DB) FeedbackServicer {
	return &feedbackService{db: db}
}

// Create appends a feedback record.
func (s *feedbackService) Create(name, email, feedback string, rating int, userID *uint) (*models.FeedbackItem, error) {
	if name == "" || email == "" || feedback == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, email and feedback are required")
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rating must be between 1 and 5")
	}

	item := &models.FeedbackItem{
		Name:     name,
		Email:    email,
		Feedback: feedback,
		Rating:   rating,
		UserID:   userID,
		Date:     time.Now(),
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return item, nil
}

// List returns all feedback items, newest first.
func (s *feedbackService) List() ([]models.FeedbackItem, error) {
	var items []models.FeedbackItem
	if err := s.db.Order("date DESC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// Summary aggregates ratings across all feedback: the average, the total
// count and a count per star. Every star from 1 to 5 gets an entry even at
// zero so clients can render the full distribution.
func (s *feedbackService) Summary() (*RatingsSummary, error) {
	var byRating []RatingCount
	if err := s.db.Model(&models.FeedbackItem{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&byRating).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &RatingsSummary{}
	counts := make(map[int]int64, len(byRating))
	var sum int64
	for _, rc := range byRating {
		counts[rc.Rating] = rc.Count
		summary.Total += rc.Count
		sum += int64(rc.Rating) * rc.Count
	}
	if summary.Total > 0 {
		summary.Average = float64(sum) / float64(summary.Total)
	}
	for rating := 1; rating <= 5; rating++ {
		summary.Counts = append(summary.Counts, RatingCount{Rating: rating, Count: counts[rating]})
	}

	return summary, nil
}

// Update modifies the text and/or rating of an existing feedback item and
// returns the updated record.
func (s *feedbackService) Update(id uint, feedback *string, rating *int) (*models.FeedbackItem, error) {
	var item models.FeedbackItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if feedback != nil {
		if *feedback == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "feedback cannot be empty")
		}
		updates["feedback"] = *feedback
	}
	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rating must be between 1 and 5")
		}
		updates["rating"] = *rating
	}

	if len(updates) > 0 {
		if err := s.db.Model(&item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &item, nil
}

// Delete removes a feedback item.
func (s *feedbackService) Delete(id uint) error {
	result := s.db.Delete(&models.FeedbackItem{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrFeedbackNotFound
	}
	return nil
}
