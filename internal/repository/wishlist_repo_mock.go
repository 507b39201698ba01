package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockWishListRepository is an in-memory implementation of the wishlist
// store with the same $push/$pull semantics as the mongo repository.
type MockWishListRepository struct {
	mu        sync.RWMutex
	wishLists map[primitive.ObjectID]models.WishList
	order     []primitive.ObjectID
}

// NewMockWishListRepository creates a new instance of MockWishListRepository.
func NewMockWishListRepository() *MockWishListRepository {
	return &MockWishListRepository{
		wishLists: make(map[primitive.ObjectID]models.WishList),
	}
}

func (r *MockWishListRepository) InsertWishList(ctx context.Context, wishList *models.WishList) (*models.WishList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wishList.ID = primitive.NewObjectID()
	wishList.CreatedOn = time.Now()
	wishList.UpdatedOn = time.Now()
	if wishList.Items == nil {
		wishList.Items = []primitive.ObjectID{}
	}
	r.wishLists[wishList.ID] = *wishList
	r.order = append(r.order, wishList.ID)
	return wishList, nil
}

func (r *MockWishListRepository) FindWishListByID(ctx context.Context, id primitive.ObjectID) (*models.WishList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishList, ok := r.wishLists[id]
	if !ok {
		return nil, apperr.NotFound("wishlist not found")
	}
	return &wishList, nil
}

func (r *MockWishListRepository) FindAllWishLists(ctx context.Context) ([]models.WishList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishLists := make([]models.WishList, 0, len(r.order))
	for _, id := range r.order {
		if wishList, ok := r.wishLists[id]; ok {
			wishLists = append(wishLists, wishList)
		}
	}
	return wishLists, nil
}

func (r *MockWishListRepository) FindWishListsByUser(ctx context.Context, userID string) ([]models.WishList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wishLists []models.WishList
	for _, id := range r.order {
		if wishList, ok := r.wishLists[id]; ok && wishList.UserID == userID {
			wishLists = append(wishLists, wishList)
		}
	}
	return wishLists, nil
}

func (r *MockWishListRepository) UpdateWishListAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.WishList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wishList, ok := r.wishLists[id]
	if !ok {
		return nil, apperr.NotFound("wishlist not found")
	}

	for key, value := range updates {
		switch key {
		case "userId":
			wishList.UserID = value.(string)
		case "items":
			wishList.Items = append([]primitive.ObjectID(nil), value.([]primitive.ObjectID)...)
		}
	}
	wishList.UpdatedOn = time.Now()
	r.wishLists[id] = wishList
	return &wishList, nil
}

func (r *MockWishListRepository) PushItem(ctx context.Context, id, itemID primitive.ObjectID) (*models.WishList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wishList, ok := r.wishLists[id]
	if !ok {
		return nil, apperr.NotFound("wishlist not found")
	}

	wishList.Items = append(append([]primitive.ObjectID(nil), wishList.Items...), itemID)
	wishList.UpdatedOn = time.Now()
	r.wishLists[id] = wishList
	return &wishList, nil
}

func (r *MockWishListRepository) PullItem(ctx context.Context, id, itemID primitive.ObjectID) (*models.WishList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wishList, ok := r.wishLists[id]
	if !ok {
		return nil, apperr.NotFound("wishlist not found")
	}

	kept := make([]primitive.ObjectID, 0, len(wishList.Items))
	for _, existing := range wishList.Items {
		if existing != itemID {
			kept = append(kept, existing)
		}
	}
	wishList.Items = kept
	wishList.UpdatedOn = time.Now()
	r.wishLists[id] = wishList
	return &wishList, nil
}

func (r *MockWishListRepository) DeleteWishList(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.wishLists, id)
	return nil
}
