package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	apperrors "souqly/internal/errors"
	"souqly/internal/models"
)

// reviewService handles per-service ratings.
type reviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewServicer.
func NewReviewService(db *gorm.DB) ReviewServicer {
	return &reviewService{db: db}
}

// Create submits a review, denormalizing the reviewer's display name at
// submission time. A user may review the same service more than once.
func (s *reviewService) Create(userID, serviceID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.ServiceItem{}).Where("id = ?", serviceID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrServiceNotFound
	}

	name := user.Name
	if name == "" {
		name = user.Email
	}

	review := &models.Review{
		ServiceID: serviceID,
		UserID:    userID,
		UserName:  name,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return review, nil
}

// ListForService returns a service's reviews, newest first.
func (s *reviewService) ListForService(serviceID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("service_id = ?", serviceID).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return reviews, nil
}

// Aggregate computes the arithmetic mean rating rounded to one decimal.
// A zero Count means "no rating badge", not a 0.0 rating.
func (s *reviewService) Aggregate(serviceID string) (models.RatingAggregate, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := s.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("service_id = ?", serviceID).
		Scan(&row).Error
	if err != nil {
		return models.RatingAggregate{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if row.Count == 0 {
		return models.RatingAggregate{}, nil
	}
	return models.RatingAggregate{
		Average: math.Round(row.Avg*10) / 10,
		Count:   row.Count,
	}, nil
}

// AggregateMany computes rating aggregates for a batch of services in
// one query, used to decorate catalog listings. Services without
// reviews are absent from the result map.
func (s *reviewService) AggregateMany(serviceIDs []string) (map[string]models.RatingAggregate, error) {
	out := make(map[string]models.RatingAggregate, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ServiceID string
		Avg       float64
		Count     int64
	}
	err := s.db.Model(&models.Review{}).
		Select("service_id, AVG(rating) AS avg, COUNT(*) AS count").
		Where("service_id IN (?)", serviceIDs).
		Group("service_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, row := range rows {
		out[row.ServiceID] = models.RatingAggregate{
			Average: math.Round(row.Avg*10) / 10,
			Count:   row.Count,
		}
	}
	return out, nil
}

// Delete removes a review. Authors may delete their own; admins may
// delete any.
func (s *reviewService) Delete(reviewID, requesterID string, requesterRole models.Role) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if requesterRole != models.RoleAdmin && review.UserID != requesterID {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
