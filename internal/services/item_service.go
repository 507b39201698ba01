package services

import (
	"context"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/Adilet2002/item-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemService encapsulates the business logic for items.
type ItemService struct {
	repo         ItemStore
	categoryRepo CategoryStore
	reviewRepo   ReviewStore
}

// NewItemService creates a new instance of ItemService.
func NewItemService(repo ItemStore, categoryRepo CategoryStore, reviewRepo ReviewStore) *ItemService {
	return &ItemService{
		repo:         repo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
	}
}

// CreateItem validates the item and stores it.
func (s *ItemService) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := models.Validate(item); err != nil {
		logger.Log.WithError(err).Warn("Item validation failed during creation")
		return nil, err
	}
	return s.repo.InsertItem(ctx, item)
}

// GetItem retrieves an item by its ID.
func (s *ItemService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("item_id", id).Warn("Invalid item ID in GetItem")
		return nil, apperr.Malformed("invalid item ID")
	}
	return s.repo.FindItemByID(ctx, objID)
}

// GetItems retrieves all items.
func (s *ItemService) GetItems(ctx context.Context) ([]models.Item, error) {
	return s.repo.FindAllItems(ctx)
}

// GetItemsByCategory retrieves all items belonging to the named category.
// An unknown category name yields an empty list rather than an error.
func (s *ItemService) GetItemsByCategory(ctx context.Context, name string) ([]models.Item, error) {
	category, err := s.categoryRepo.FindCategoryByName(ctx, name)
	if err != nil {
		if apperr.IsNotFound(err) {
			return []models.Item{}, nil
		}
		return nil, err
	}
	return s.repo.FindItemsByCategory(ctx, category.ID)
}

// GetItemsByBrand retrieves all items with an exact brand match.
func (s *ItemService) GetItemsByBrand(ctx context.Context, brand string) ([]models.Item, error) {
	return s.repo.FindItemsByBrand(ctx, brand)
}

// SearchItems matches the keyword against item name, brand and description,
// and against category names so items in a matching category surface too.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	categories, err := s.categoryRepo.FindCategoriesByNamePattern(ctx, text)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]primitive.ObjectID, 0, len(categories))
	for _, category := range categories {
		categoryIDs = append(categoryIDs, category.ID)
	}

	return s.repo.SearchItems(ctx, text, categoryIDs)
}

// GetTopRatedItems returns up to limit items ranked by average review
// rating, best first.
func (s *ItemService) GetTopRatedItems(ctx context.Context, limit int64) ([]models.Item, error) {
	ids, err := s.reviewRepo.TopRatedItemIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.repo.FindItemsByIDs(ctx, ids)
}

// UpdateItem merges the supplied fields into the stored item, re-validates
// the merged record, and persists it. The post-update document is returned.
func (s *ItemService) UpdateItem(ctx context.Context, id string, updates map[string]interface{}) (*models.Item, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("item_id", id).Warn("Invalid item ID in UpdateItem")
		return nil, apperr.Malformed("invalid item ID")
	}

	existing, err := s.repo.FindItemByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	set, err := mergeItemUpdates(existing, updates)
	if err != nil {
		return nil, err
	}

	if err := models.Validate(existing); err != nil {
		logger.Log.WithError(err).WithField("item_id", id).Warn("Item validation failed during update")
		return nil, err
	}

	return s.repo.UpdateItemAndReturn(ctx, objID, set)
}

// DeleteItem removes an item. Reviews and wishlist entries referencing it
// are left in place.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("item_id", id).Warn("Invalid item ID in DeleteItem")
		return apperr.Malformed("invalid item ID")
	}
	return s.repo.DeleteItem(ctx, objID)
}

// mergeItemUpdates applies the named fields to the record in place and
// returns the matching $set document. Unknown fields are ignored.
func mergeItemUpdates(item *models.Item, updates map[string]interface{}) (bson.M, error) {
	set := bson.M{}

	for key, value := range updates {
		switch key {
		case "name":
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("name must be a string")
			}
			item.Name = str
			set["name"] = str
		case "description":
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("description must be a string")
			}
			item.Description = str
			set["description"] = str
		case "brand":
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("brand must be a string")
			}
			item.Brand = str
			set["brand"] = str
		case "price":
			num, ok := value.(float64)
			if !ok {
				return nil, apperr.Malformed("price must be a number")
			}
			item.Price = &num
			set["price"] = num
		case "category":
			if value == nil {
				item.Category = nil
				set["category"] = nil
				continue
			}
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("category must be an ID string")
			}
			categoryID, err := primitive.ObjectIDFromHex(str)
			if err != nil {
				return nil, apperr.Malformed("invalid category ID")
			}
			item.Category = &categoryID
			set["category"] = categoryID
		}
	}

	return set, nil
}
