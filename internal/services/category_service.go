package services

import (
	"context"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/Adilet2002/item-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryService encapsulates the business logic for categories.
type CategoryService struct {
	repo CategoryStore
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(repo CategoryStore) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategory validates the category and stores it. A duplicate name
// surfaces as a conflict from the storage layer.
func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := models.Validate(category); err != nil {
		logger.Log.WithError(err).Warn("Category validation failed during creation")
		return nil, err
	}
	return s.repo.InsertCategory(ctx, category)
}

// GetCategory retrieves a category by its ID.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("category_id", id).Warn("Invalid category ID in GetCategory")
		return nil, apperr.Malformed("invalid category ID")
	}
	return s.repo.FindCategoryByID(ctx, objID)
}

// GetCategories retrieves all categories.
func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAllCategories(ctx)
}

// UpdateCategory merges the supplied fields into the stored category,
// re-validates, and returns the post-update document.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, updates map[string]interface{}) (*models.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("category_id", id).Warn("Invalid category ID in UpdateCategory")
		return nil, apperr.Malformed("invalid category ID")
	}

	existing, err := s.repo.FindCategoryByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for key, value := range updates {
		switch key {
		case "name":
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("name must be a string")
			}
			existing.Name = str
			set["name"] = str
		case "description":
			str, ok := value.(string)
			if !ok {
				return nil, apperr.Malformed("description must be a string")
			}
			existing.Description = str
			set["description"] = str
		}
	}

	if err := models.Validate(existing); err != nil {
		logger.Log.WithError(err).WithField("category_id", id).Warn("Category validation failed during update")
		return nil, err
	}

	return s.repo.UpdateCategoryAndReturn(ctx, objID, set)
}

// DeleteCategory removes a category. Items referencing it keep their
// dangling reference.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("category_id", id).Warn("Invalid category ID in DeleteCategory")
		return apperr.Malformed("invalid category ID")
	}
	return s.repo.DeleteCategory(ctx, objID)
}
