package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockReviewRepository is an in-memory implementation of the review store.
type MockReviewRepository struct {
	mu      sync.RWMutex
	reviews map[primitive.ObjectID]models.Review
	order   []primitive.ObjectID
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[primitive.ObjectID]models.Review),
	}
}

func (r *MockReviewRepository) InsertReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	r.order = append(r.order, review.ID)
	return review, nil
}

func (r *MockReviewRepository) FindReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, apperr.NotFound("review not found")
	}
	return &review, nil
}

func (r *MockReviewRepository) FindAllReviews(ctx context.Context) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := make([]models.Review, 0, len(r.order))
	for _, id := range r.order {
		if review, ok := r.reviews[id]; ok {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (r *MockReviewRepository) FindReviewsByItem(ctx context.Context, itemID primitive.ObjectID) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []models.Review
	for _, id := range r.order {
		if review, ok := r.reviews[id]; ok && review.Item == itemID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (r *MockReviewRepository) TopRatedItemIDs(ctx context.Context, limit int64) ([]primitive.ObjectID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sums := make(map[primitive.ObjectID]int)
	counts := make(map[primitive.ObjectID]int)
	var itemIDs []primitive.ObjectID
	for _, id := range r.order {
		review, ok := r.reviews[id]
		if !ok {
			continue
		}
		if counts[review.Item] == 0 {
			itemIDs = append(itemIDs, review.Item)
		}
		sums[review.Item] += review.Rating
		counts[review.Item]++
	}

	sort.SliceStable(itemIDs, func(i, j int) bool {
		avgI := float64(sums[itemIDs[i]]) / float64(counts[itemIDs[i]])
		avgJ := float64(sums[itemIDs[j]]) / float64(counts[itemIDs[j]])
		return avgI > avgJ
	})

	if int64(len(itemIDs)) > limit {
		itemIDs = itemIDs[:limit]
	}
	return itemIDs, nil
}

func (r *MockReviewRepository) UpdateReviewAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, apperr.NotFound("review not found")
	}

	for key, value := range updates {
		switch key {
		case "item":
			review.Item = value.(primitive.ObjectID)
		case "rating":
			review.Rating = value.(int)
		case "comment":
			review.Comment = value.(string)
		}
	}
	review.UpdatedAt = time.Now()
	r.reviews[id] = review
	return &review, nil
}

func (r *MockReviewRepository) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reviews, id)
	return nil
}
