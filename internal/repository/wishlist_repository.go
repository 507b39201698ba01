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

// WishListRepository handles database operations related to wishlists.
type WishListRepository struct {
	collection *mongo.Collection
}

// NewWishListRepository creates a new instance of WishListRepository.
func NewWishListRepository(db *mongo.Database) *WishListRepository {
	return &WishListRepository{
		collection: db.Collection("wishlists"),
	}
}

// InsertWishList stores a new wishlist and returns it with the generated ID.
func (r *WishListRepository) InsertWishList(ctx context.Context, wishList *models.WishList) (*models.WishList, error) {
	wishList.CreatedOn = time.Now()
	wishList.UpdatedOn = time.Now()
	if wishList.Items == nil {
		wishList.Items = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, wishList)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert wishlist")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted wishlist ID")
		return nil, errors.New("unexpected inserted ID type")
	}
	wishList.ID = insertedID

	logger.Log.WithField("wishlist_id", wishList.ID.Hex()).Info("WishList created successfully")
	return wishList, nil
}

// FindWishListByID fetches a wishlist by its ID.
func (r *WishListRepository) FindWishListByID(ctx context.Context, id primitive.ObjectID) (*models.WishList, error) {
	var wishList models.WishList

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&wishList)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("wishlist not found", err)
		}
		logger.Log.WithError(err).WithField("wishlist_id", id.Hex()).Error("Failed to find wishlist by ID")
		return nil, err
	}

	return &wishList, nil
}

// FindAllWishLists fetches all wishlists.
func (r *WishListRepository) FindAllWishLists(ctx context.Context) ([]models.WishList, error) {
	return r.findWishLists(ctx, bson.M{})
}

// FindWishListsByUser fetches every wishlist owned by the given user. A user
// may own zero, one, or many.
func (r *WishListRepository) FindWishListsByUser(ctx context.Context, userID string) ([]models.WishList, error) {
	return r.findWishLists(ctx, bson.M{"userId": userID})
}

// UpdateWishListAndReturn replaces the given fields and returns the
// post-update document.
func (r *WishListRepository) UpdateWishListAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.WishList, error) {
	updates["updatedOn"] = time.Now()
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": updates})
}

// PushItem appends an item id to the wishlist. Duplicates are permitted and
// insertion order is preserved.
func (r *WishListRepository) PushItem(ctx context.Context, id, itemID primitive.ObjectID) (*models.WishList, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$push": bson.M{"items": itemID},
		"$set":  bson.M{"updatedOn": time.Now()},
	})
}

// PullItem removes every occurrence of the item id from the wishlist.
func (r *WishListRepository) PullItem(ctx context.Context, id, itemID primitive.ObjectID) (*models.WishList, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$pull": bson.M{"items": itemID},
		"$set":  bson.M{"updatedOn": time.Now()},
	})
}

// DeleteWishList removes a wishlist by ID. Deleting a missing wishlist is
// not an error.
func (r *WishListRepository) DeleteWishList(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("wishlist_id", id.Hex()).Error("Failed to delete wishlist")
		return err
	}

	logger.Log.WithField("wishlist_id", id.Hex()).Info("WishList deleted successfully")
	return nil
}

func (r *WishListRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.WishList, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.WishList
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("wishlist not found", err)
		}
		logger.Log.WithError(err).WithField("wishlist_id", id.Hex()).Error("Failed to update wishlist")
		return nil, err
	}

	logger.Log.WithField("wishlist_id", id.Hex()).Info("WishList updated successfully")
	return &updated, nil
}

func (r *WishListRepository) findWishLists(ctx context.Context, filter bson.M) ([]models.WishList, error) {
	var wishLists []models.WishList

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch wishlists")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var wishList models.WishList
		if err := cursor.Decode(&wishList); err != nil {
			logger.Log.WithError(err).Error("Failed to decode wishlist")
			return nil, err
		}
		wishLists = append(wishLists, wishList)
	}

	return wishLists, nil
}
