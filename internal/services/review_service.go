package services

import (
	"context"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/Adilet2002/item-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService encapsulates the business logic for reviews.
type ReviewService struct {
	repo ReviewStore
}

// NewReviewService creates a new instance of ReviewService.
func NewReviewService(repo ReviewStore) *ReviewService {
	return &ReviewService{repo: repo}
}

// CreateReview validates the review and stores it. The referenced item is
// not checked for existence.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := models.Validate(review); err != nil {
		logger.Log.WithError(err).Warn("Review validation failed during creation")
		return nil, err
	}
	return s.repo.InsertReview(ctx, review)
}

// GetReview retrieves a review by its ID.
func (s *ReviewService) GetReview(ctx context.Context, id string) (*models.Review, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("review_id", id).Warn("Invalid review ID in GetReview")
		return nil, apperr.Malformed("invalid review ID")
	}
	return s.repo.FindReviewByID(ctx, objID)
}

// GetReviews retrieves all reviews.
func (s *ReviewService) GetReviews(ctx context.Context) ([]models.Review, error) {
	return s.repo.FindAllReviews(ctx)
}

// GetReviewsByItem retrieves all reviews referencing the given item.
func (s *ReviewService) GetReviewsByItem(ctx context.Context, itemID string) ([]models.Review, error) {
	objID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		logger.Log.WithField("item_id", itemID).Warn("Invalid item ID in GetReviewsByItem")
		return nil, apperr.Malformed("invalid item ID")
	}
	return s.repo.FindReviewsByItem(ctx, objID)
}

// UpdateReview merges the supplied fields into the stored review,
// re-validates, and returns the post-update document.
func (s *ReviewService) UpdateReview(ctx context.Context, id string, updates map[string]interface{}) (*models.Review, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("review_id", id).Warn("Invalid review ID in UpdateReview")
		return nil, apperr.Malformed("invalid review ID")
	}

	existing, err := s.repo.FindReviewByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for key, value := range updates {
		switch key {
		case "item":
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("item must be an ID string")
			}
			itemID, err := primitive.ObjectIDFromHex(str)
			if err != nil {
				return nil, apperr.Malformed("invalid item ID")
			}
			existing.Item = itemID
			set["item"] = itemID
		case "rating":
			// JSON numbers decode as float64.
			num, ok := value.(float64)
			if !ok {
				return nil, apperr.Malformed("rating must be a number")
			}
			existing.Rating = int(num)
			set["rating"] = int(num)
		case "comment":
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("comment must be a string")
			}
			existing.Comment = str
			set["comment"] = str
		}
	}

	if err := models.Validate(existing); err != nil {
		logger.Log.WithError(err).WithField("review_id", id).Warn("Review validation failed during update")
		return nil, err
	}

	return s.repo.UpdateReviewAndReturn(ctx, objID, set)
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("review_id", id).Warn("Invalid review ID in DeleteReview")
		return apperr.Malformed("invalid review ID")
	}
	return s.repo.DeleteReview(ctx, objID)
}
