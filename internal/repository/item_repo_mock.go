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

// MockItemRepository is an in-memory implementation of the item store,
// used in tests instead of a running MongoDB.
type MockItemRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.Item
	order []primitive.ObjectID
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items: make(map[primitive.ObjectID]models.Item),
	}
}

func (r *MockItemRepository) InsertItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = primitive.NewObjectID()
	item.CreatedOn = time.Now()
	item.UpdatedOn = time.Now()
	r.items[item.ID] = *item
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *MockItemRepository) FindItemByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("item not found")
	}
	return &item, nil
}

func (r *MockItemRepository) FindAllItems(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.order))
	for _, id := range r.order {
		if item, ok := r.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *MockItemRepository) FindItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.Item
	for _, id := range r.order {
		item, ok := r.items[id]
		if ok && item.Category != nil && *item.Category == categoryID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *MockItemRepository) FindItemsByBrand(ctx context.Context, brand string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.Item
	for _, id := range r.order {
		if item, ok := r.items[id]; ok && item.Brand == brand {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *MockItemRepository) SearchItems(ctx context.Context, text string, categoryIDs []primitive.ObjectID) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(text)
	inCategory := make(map[primitive.ObjectID]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		inCategory[id] = true
	}

	var items []models.Item
	for _, id := range r.order {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Brand), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) ||
			(item.Category != nil && inCategory[*item.Category]) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *MockItemRepository) FindItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.Item
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *MockItemRepository) UpdateItemAndReturn(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("item not found")
	}

	for key, value := range updates {
		switch key {
		case "name":
			item.Name = value.(string)
		case "description":
			item.Description = value.(string)
		case "brand":
			item.Brand = value.(string)
		case "price":
			price := value.(float64)
			item.Price = &price
		case "category":
			if value == nil {
				item.Category = nil
			} else {
				categoryID := value.(primitive.ObjectID)
				item.Category = &categoryID
			}
		}
	}
	item.UpdatedOn = time.Now()
	r.items[id] = item
	return &item, nil
}

func (r *MockItemRepository) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// Count reports how many items are stored.
func (r *MockItemRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
