package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/Adilet2002/item-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository handles database operations related to reviews.
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection("reviews"),
	}
}

// InsertReview stores a new review and returns it with the generated ID.
func (r *ReviewRepository) InsertReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert review")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted review ID")
		return nil, errors.New("unexpected inserted ID type")
	}
	review.ID = insertedID

	logger.Log.WithField("review_id", review.ID.Hex()).Info("Review created successfully")
	return review, nil
}

// FindReviewByID fetches a review by its ID.
func (r *ReviewRepository) FindReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("review not found", err)
		}
		logger.Log.WithError(err).WithField("review_id", id.Hex()).Error("Failed to find review by ID")
		return nil, err
	}

	return &review, nil
}

// FindAllReviews fetches all reviews.
func (r *ReviewRepository) FindAllReviews(ctx context.Context) ([]models.Review, error) {
	return r.findReviews(ctx, bson.M{})
}

// FindReviewsByItem fetches all reviews referencing the given item, in the
// store's natural order.
func (r *ReviewRepository) FindReviewsByItem(ctx context.Context, itemID primitive.ObjectID) ([]models.Review, error) {
	return r.findReviews(ctx, bson.M{"item": itemID})
}

// TopRatedItemIDs ranks items by average review rating and returns the ids
// of the top limit items, best first.
func (r *ReviewRepository) TopRatedItemIDs(ctx context.Context, limit int64) ([]primitive.ObjectID, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":       "$item",
			"avgRating": bson.M{"$avg": "$rating"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avgRating", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to aggregate top rated items")
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var row struct {
			ItemID    primitive.ObjectID `bson:"_id"`
			AvgRating float64            `bson:"avgRating"`
		}
		if err := cursor.Decode(&row); err != nil {
			logger.Log.WithError(err).Error("Failed to decode top rated row")
			return nil, err
		}
		ids = append(ids, row.ItemID)
	}

	return ids, nil
}

// UpdateReviewAndReturn replaces the given fields and returns the
// post-update document.
func (r *ReviewRepository) UpdateReviewAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Review, error) {
	updates["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Review
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("review not found", err)
		}
		logger.Log.WithError(err).WithField("review_id", id.Hex()).Error("Failed to update review")
		return nil, err
	}

	logger.Log.WithField("review_id", id.Hex()).Info("Review updated successfully")
	return &updated, nil
}

// DeleteReview removes a review by ID. Deleting a missing review is not an
// error.
func (r *ReviewRepository) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("review_id", id.Hex()).Error("Failed to delete review")
		return err
	}

	logger.Log.WithField("review_id", id.Hex()).Info("Review deleted successfully")
	return nil
}

func (r *ReviewRepository) findReviews(ctx context.Context, filter bson.M) ([]models.Review, error) {
	var reviews []models.Review

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch reviews")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var review models.Review
		if err := cursor.Decode(&review); err != nil {
			logger.Log.WithError(err).Error("Failed to decode review")
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}
