package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/Adilet2002/item-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ItemRepository handles database operations related to items.
type ItemRepository struct {
	collection *mongo.Collection
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{
		collection: db.Collection("items"),
	}
}

// InsertItem stores a new item and returns it with the generated ID.
func (r *ItemRepository) InsertItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	item.CreatedOn = time.Now()
	item.UpdatedOn = time.Now()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert item")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted item ID")
		return nil, errors.New("unexpected inserted ID type")
	}
	item.ID = insertedID

	logger.Log.WithField("item_id", item.ID.Hex()).Info("Item created successfully")
	return item, nil
}

// FindItemByID fetches an item by its ID.
func (r *ItemRepository) FindItemByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error) {
	var item models.Item

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("item not found", err)
		}
		logger.Log.WithError(err).WithField("item_id", id.Hex()).Error("Failed to find item by ID")
		return nil, err
	}

	return &item, nil
}

// FindAllItems fetches all items, unfiltered.
func (r *ItemRepository) FindAllItems(ctx context.Context) ([]models.Item, error) {
	return r.findItems(ctx, bson.M{})
}

// FindItemsByCategory fetches all items referencing the given category.
func (r *ItemRepository) FindItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Item, error) {
	return r.findItems(ctx, bson.M{"category": categoryID})
}

// FindItemsByBrand fetches all items of an exact brand.
func (r *ItemRepository) FindItemsByBrand(ctx context.Context, brand string) ([]models.Item, error) {
	return r.findItems(ctx, bson.M{"brand": brand})
}

// SearchItems runs a case-insensitive unanchored substring match over name,
// brand and description, unioned with items whose category is in categoryIDs.
func (r *ItemRepository) SearchItems(ctx context.Context, text string, categoryIDs []primitive.ObjectID) ([]models.Item, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}

	or := []bson.M{
		{"name": pattern},
		{"brand": pattern},
		{"description": pattern},
	}
	if len(categoryIDs) > 0 {
		or = append(or, bson.M{"category": bson.M{"$in": categoryIDs}})
	}

	return r.findItems(ctx, bson.M{"$or": or})
}

// FindItemsByIDs fetches the given items and returns them in the order the
// ids were supplied. Missing ids are skipped.
func (r *ItemRepository) FindItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := r.findItems(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Item, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	var items []models.Item
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// UpdateItemAndReturn replaces the given fields and returns the post-update
// document.
func (r *ItemRepository) UpdateItemAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Item, error) {
	updates["updatedOn"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Item
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("item not found", err)
		}
		logger.Log.WithError(err).WithField("item_id", id.Hex()).Error("Failed to update item")
		return nil, err
	}

	logger.Log.WithField("item_id", id.Hex()).Info("Item updated successfully")
	return &updated, nil
}

// DeleteItem removes an item by ID. Deleting a missing item is not an error.
func (r *ItemRepository) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("item_id", id.Hex()).Error("Failed to delete item")
		return err
	}

	logger.Log.WithField("item_id", id.Hex()).Info("Item deleted successfully")
	return nil
}

func (r *ItemRepository) findItems(ctx context.Context, filter bson.M) ([]models.Item, error) {
	var items []models.Item

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch items")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var item models.Item
		if err := cursor.Decode(&item); err != nil {
			logger.Log.WithError(err).Error("Failed to decode item")
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
