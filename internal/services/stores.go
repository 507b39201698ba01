package services

import (
	"context"

	"github.com/Adilet2002/item-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces are declared on the consumer side so services can be
// tested against fakes. The mongo repositories satisfy them.

type ItemStore interface {
	InsertItem(ctx context.Context, item *models.Item) (*models.Item, error)
	FindItemByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error)
	FindAllItems(ctx context.Context) ([]models.Item, error)
	FindItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Item, error)
	FindItemsByBrand(ctx context.Context, brand string) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, categoryIDs []primitive.ObjectID) ([]models.Item, error)
	FindItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Item, error)
	UpdateItemAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Item, error)
	DeleteItem(ctx context.Context, id primitive.ObjectID) error
}

type CategoryStore interface {
	InsertCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	FindAllCategories(ctx context.Context) ([]models.Category, error)
	FindCategoriesByNamePattern(ctx context.Context, text string) ([]models.Category, error)
	UpdateCategoryAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
}

type ReviewStore interface {
	InsertReview(ctx context.Context, review *models.Review) (*models.Review, error)
	FindReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindAllReviews(ctx context.Context) ([]models.Review, error)
	FindReviewsByItem(ctx context.Context, itemID primitive.ObjectID) ([]models.Review, error)
	TopRatedItemIDs(ctx context.Context, limit int64) ([]primitive.ObjectID, error)
	UpdateReviewAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
}

type WishListStore interface {
	InsertWishList(ctx context.Context, wishList *models.WishList) (*models.WishList, error)
	FindWishListByID(ctx context.Context, id primitive.ObjectID) (*models.WishList, error)
	FindAllWishLists(ctx context.Context) ([]models.WishList, error)
	FindWishListsByUser(ctx context.Context, userID string) ([]models.WishList, error)
	UpdateWishListAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.WishList, error)
	PushItem(ctx context.Context, id, itemID primitive.ObjectID) (*models.WishList, error)
	PullItem(ctx context.Context, id, itemID primitive.ObjectID) (*models.WishList, error)
	DeleteWishList(ctx context.Context, id primitive.ObjectID) error
}
