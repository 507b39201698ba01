package services

import (
	"context"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/Adilet2002/item-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishListService encapsulates the business logic for wishlists.
type WishListService struct {
	repo WishListStore
}

// NewWishListService creates a new instance of WishListService.
func NewWishListService(repo WishListStore) *WishListService {
	return &WishListService{repo: repo}
}

// CreateWishList validates the wishlist and stores it. The owning user is
// an opaque string and is not verified.
func (s *WishListService) CreateWishList(ctx context.Context, wishList *models.WishList) (*models.WishList, error) {
	if err := models.Validate(wishList); err != nil {
		logger.Log.WithError(err).Warn("WishList validation failed during creation")
		return nil, err
	}
	return s.repo.InsertWishList(ctx, wishList)
}

// GetWishList retrieves a wishlist by its ID.
func (s *WishListService) GetWishList(ctx context.Context, id string) (*models.WishList, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("wishlist_id", id).Warn("Invalid wishlist ID in GetWishList")
		return nil, apperr.Malformed("invalid wishlist ID")
	}
	return s.repo.FindWishListByID(ctx, objID)
}

// GetWishLists retrieves all wishlists.
func (s *WishListService) GetWishLists(ctx context.Context) ([]models.WishList, error) {
	return s.repo.FindAllWishLists(ctx)
}

// GetWishListsByUser retrieves every wishlist owned by the given user.
func (s *WishListService) GetWishListsByUser(ctx context.Context, userID string) ([]models.WishList, error) {
	return s.repo.FindWishListsByUser(ctx, userID)
}

// UpdateWishList merges the supplied fields into the stored wishlist,
// re-validates, and returns the post-update document.
func (s *WishListService) UpdateWishList(ctx context.Context, id string, updates map[string]interface{}) (*models.WishList, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("wishlist_id", id).Warn("Invalid wishlist ID in UpdateWishList")
		return nil, apperr.Malformed("invalid wishlist ID")
	}

	existing, err := s.repo.FindWishListByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for key, value := range updates {
		switch key {
		case "userId":
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("userId must be a string")
			}
			existing.UserID = str
			set["userId"] = str
		case "items":
			raw, ok := value.([]interface{})
			if !ok {
				return nil, apperr.Malformed("items must be an array of ID strings")
			}
			items := make([]primitive.ObjectID, 0, len(raw))
			for _, entry := range raw {
				str, ok := entry.(string)
				if !ok {
					return nil, apperr.Malformed("items must be an array of ID strings")
				}
				itemID, err := primitive.ObjectIDFromHex(str)
				if err != nil {
					return nil, apperr.Malformed("invalid item ID in items")
				}
				items = append(items, itemID)
			}
			existing.Items = items
			set["items"] = items
		}
	}

	if err := models.Validate(existing); err != nil {
		logger.Log.WithError(err).WithField("wishlist_id", id).Warn("WishList validation failed during update")
		return nil, err
	}

	return s.repo.UpdateWishListAndReturn(ctx, objID, set)
}

// AddItem appends an item id to the wishlist and returns the post-mutation
// state. Duplicates are permitted; the item is not checked for existence.
func (s *WishListService) AddItem(ctx context.Context, id, itemID string) (*models.WishList, error) {
	objID, itemObjID, err := parseWishListIDs(id, itemID)
	if err != nil {
		return nil, err
	}
	return s.repo.PushItem(ctx, objID, itemObjID)
}

// RemoveItem removes every occurrence of the item id from the wishlist and
// returns the post-mutation state.
func (s *WishListService) RemoveItem(ctx context.Context, id, itemID string) (*models.WishList, error) {
	objID, itemObjID, err := parseWishListIDs(id, itemID)
	if err != nil {
		return nil, err
	}
	return s.repo.PullItem(ctx, objID, itemObjID)
}

// DeleteWishList removes a wishlist.
func (s *WishListService) DeleteWishList(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("wishlist_id", id).Warn("Invalid wishlist ID in DeleteWishList")
		return apperr.Malformed("invalid wishlist ID")
	}
	return s.repo.DeleteWishList(ctx, objID)
}

func parseWishListIDs(id, itemID string) (primitive.ObjectID, primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("wishlist_id", id).Warn("Invalid wishlist ID")
		return primitive.NilObjectID, primitive.NilObjectID, apperr.Malformed("invalid wishlist ID")
	}
	itemObjID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		logger.Log.WithField("item_id", itemID).Warn("Invalid item ID")
		return primitive.NilObjectID, primitive.NilObjectID, apperr.Malformed("invalid item ID")
	}
	return objID, itemObjID, nil
}
