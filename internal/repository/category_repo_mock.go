package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCategoryRepository is an in-memory implementation of the category
// store. Name uniqueness is enforced the way the unique index would.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]models.Category
	order      []primitive.ObjectID
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[primitive.ObjectID]models.Category),
	}
}

func (r *MockCategoryRepository) InsertCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Name == category.Name {
			return nil, apperr.Conflict("category name already exists", nil)
		}
	}

	category.ID = primitive.NewObjectID()
	category.CreatedOn = time.Now()
	category.UpdatedOn = time.Now()
	r.categories[category.ID] = *category
	r.order = append(r.order, category.ID)
	return category, nil
}

func (r *MockCategoryRepository) FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}
	return &category, nil
}

func (r *MockCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.Name == name {
			match := category
			return &match, nil
		}
	}
	return nil, apperr.NotFound("category not found")
}

func (r *MockCategoryRepository) FindAllCategories(ctx context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]models.Category, 0, len(r.order))
	for _, id := range r.order {
		if category, ok := r.categories[id]; ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (r *MockCategoryRepository) FindCategoriesByNamePattern(ctx context.Context, text string) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(text)
	var categories []models.Category
	for _, id := range r.order {
		category, ok := r.categories[id]
		if ok && strings.Contains(strings.ToLower(category.Name), needle) {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (r *MockCategoryRepository) UpdateCategoryAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}

	for key, value := range updates {
		switch key {
		case "name":
			name := value.(string)
			for otherID, other := range r.categories {
				if otherID != id && other.Name == name {
					return nil, apperr.Conflict("category name already exists", nil)
				}
			}
			category.Name = name
		case "description":
			category.Description = value.(string)
		}
	}
	category.UpdatedOn = time.Now()
	r.categories[id] = category
	return &category, nil
}

func (r *MockCategoryRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.categories, id)
	return nil
}
