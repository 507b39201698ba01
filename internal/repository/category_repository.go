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

// CategoryRepository handles database operations related to categories.
type CategoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
	}
}

// InsertCategory stores a new category. A duplicate name trips the unique
// index and surfaces as a conflict.
func (r *CategoryRepository) InsertCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.CreatedOn = time.Now()
	category.UpdatedOn = time.Now()

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("category name already exists", err)
		}
		logger.Log.WithError(err).Error("Failed to insert category")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted category ID")
		return nil, errors.New("unexpected inserted ID type")
	}
	category.ID = insertedID

	logger.Log.WithField("category_id", category.ID.Hex()).Info("Category created successfully")
	return category, nil
}

// FindCategoryByID fetches a category by its ID.
func (r *CategoryRepository) FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("category not found", err)
		}
		logger.Log.WithError(err).WithField("category_id", id.Hex()).Error("Failed to find category by ID")
		return nil, err
	}

	return &category, nil
}

// FindCategoryByName fetches a category by its exact name.
func (r *CategoryRepository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category

	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("category not found", err)
		}
		logger.Log.WithError(err).WithField("category_name", name).Error("Failed to find category by name")
		return nil, err
	}

	return &category, nil
}

// FindAllCategories fetches all categories.
func (r *CategoryRepository) FindAllCategories(ctx context.Context) ([]models.Category, error) {
	return r.findCategories(ctx, bson.M{})
}

// FindCategoriesByNamePattern fetches categories whose name contains the
// given text, case-insensitively. Used by the item keyword search.
func (r *CategoryRepository) FindCategoriesByNamePattern(ctx context.Context, text string) ([]models.Category, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	return r.findCategories(ctx, bson.M{"name": pattern})
}

// UpdateCategoryAndReturn replaces the given fields and returns the
// post-update document.
func (r *CategoryRepository) UpdateCategoryAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Category, error) {
	updates["updatedOn"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Category
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFoundWrap("category not found", err)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("category name already exists", err)
		}
		logger.Log.WithError(err).WithField("category_id", id.Hex()).Error("Failed to update category")
		return nil, err
	}

	logger.Log.WithField("category_id", id.Hex()).Info("Category updated successfully")
	return &updated, nil
}

// DeleteCategory removes a category by ID. Items referencing it keep their
// now-dangling reference.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("category_id", id.Hex()).Error("Failed to delete category")
		return err
	}

	logger.Log.WithField("category_id", id.Hex()).Info("Category deleted successfully")
	return nil
}

func (r *CategoryRepository) findCategories(ctx context.Context, filter bson.M) ([]models.Category, error) {
	var categories []models.Category

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch categories")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var category models.Category
		if err := cursor.Decode(&category); err != nil {
			logger.Log.WithError(err).Error("Failed to decode category")
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, nil
}
