package services_test

import (
	"context"
	"testing"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/internal/repository"
	"github.com/Adilet2002/item-service/internal/services"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func newItemService() (*services.ItemService, *repository.MockItemRepository, *repository.MockCategoryRepository, *repository.MockReviewRepository) {
	itemRepo := repository.NewMockItemRepository()
	categoryRepo := repository.NewMockCategoryRepository()
	reviewRepo := repository.NewMockReviewRepository()
	return services.NewItemService(itemRepo, categoryRepo, reviewRepo), itemRepo, categoryRepo, reviewRepo
}

func newItem(name, brand string) *models.Item {
	return &models.Item{
		Name:        name,
		Description: "A reasonably long product description",
		Price:       floatPtr(49.90),
		Brand:       brand,
	}
}

func TestItemService_CreateAndGet(t *testing.T) {
	svc, _, _, _ := newItemService()
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, newItem("Laptop", "Lenovo"))
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedOn.IsZero())

	fetched, err := svc.GetItem(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, *created.Price, *fetched.Price)
	assert.Equal(t, created.Brand, fetched.Brand)
}

func TestItemService_CreateRejectsInvalid(t *testing.T) {
	svc, itemRepo, _, _ := newItemService()

	_, err := svc.CreateItem(context.Background(), &models.Item{Name: "Laptop"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, 0, itemRepo.Count(), "invalid item must not reach the store")
}

func TestItemService_GetMalformedID(t *testing.T) {
	svc, _, _, _ := newItemService()

	_, err := svc.GetItem(context.Background(), "not-a-hex-id")
	require.Error(t, err)
	assert.True(t, apperr.IsMalformed(err))
}

func TestItemService_GetUnknownID(t *testing.T) {
	svc, _, _, _ := newItemService()

	_, err := svc.GetItem(context.Background(), "64b4f0c2a1b2c3d4e5f60718")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestItemService_SearchMatchesCaseInsensitively(t *testing.T) {
	svc, _, _, _ := newItemService()
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, newItem("Laptop", "Lenovo"))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, newItem("Desk Chair", "Ikea"))
	require.NoError(t, err)

	results, err := svc.SearchItems(ctx, "lap")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Laptop", results[0].Name)
}

func TestItemService_SearchMatchesCategoryName(t *testing.T) {
	svc, _, categoryRepo, _ := newItemService()
	ctx := context.Background()

	category, err := categoryRepo.InsertCategory(ctx, &models.Category{
		Name:        "Gadgets",
		Description: "Small electronic gadgets",
	})
	require.NoError(t, err)

	item := newItem("Mystery Box", "Acme")
	item.Category = &category.ID
	_, err = svc.CreateItem(ctx, item)
	require.NoError(t, err)

	// The keyword appears nowhere on the item itself, only on its category.
	results, err := svc.SearchItems(ctx, "gadget")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mystery Box", results[0].Name)
}

func TestItemService_GetItemsByCategory(t *testing.T) {
	svc, _, categoryRepo, _ := newItemService()
	ctx := context.Background()

	category, err := categoryRepo.InsertCategory(ctx, &models.Category{
		Name:        "Electronics",
		Description: "Electronics category",
	})
	require.NoError(t, err)

	inCategory := newItem("Laptop", "Lenovo")
	inCategory.Category = &category.ID
	_, err = svc.CreateItem(ctx, inCategory)
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, newItem("Desk Chair", "Ikea"))
	require.NoError(t, err)

	results, err := svc.GetItemsByCategory(ctx, "Electronics")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Laptop", results[0].Name)

	// Unknown category names yield an empty list, not an error.
	results, err = svc.GetItemsByCategory(ctx, "Nonexistent")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestItemService_GetItemsByBrand(t *testing.T) {
	svc, _, _, _ := newItemService()
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, newItem("Laptop", "Lenovo"))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, newItem("Tablet", "Lenovo"))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, newItem("Desk Chair", "Ikea"))
	require.NoError(t, err)

	results, err := svc.GetItemsByBrand(ctx, "Lenovo")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestItemService_TopRatedOrdering(t *testing.T) {
	svc, _, _, reviewRepo := newItemService()
	ctx := context.Background()

	good, err := svc.CreateItem(ctx, newItem("Laptop", "Lenovo"))
	require.NoError(t, err)
	bad, err := svc.CreateItem(ctx, newItem("Desk Chair", "Ikea"))
	require.NoError(t, err)

	for _, rating := range []int{5, 4} {
		_, err = reviewRepo.InsertReview(ctx, &models.Review{Item: good.ID, Rating: rating, Comment: "nice"})
		require.NoError(t, err)
	}
	_, err = reviewRepo.InsertReview(ctx, &models.Review{Item: bad.ID, Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	results, err := svc.GetTopRatedItems(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, good.ID, results[0].ID)
	assert.Equal(t, bad.ID, results[1].ID)

	limited, err := svc.GetTopRatedItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, good.ID, limited[0].ID)
}

func TestItemService_UpdateReturnsPostState(t *testing.T) {
	svc, _, _, _ := newItemService()
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, newItem("Laptop", "Lenovo"))
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, created.ID.Hex(), map[string]interface{}{
		"name":  "Gaming Laptop",
		"price": 1299.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gaming Laptop", updated.Name)
	assert.Equal(t, 1299.0, *updated.Price)
	// Untouched fields survive the merge.
	assert.Equal(t, "Lenovo", updated.Brand)
}

func TestItemService_UpdateRevalidates(t *testing.T) {
	svc, _, _, _ := newItemService()
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, newItem("Laptop", "Lenovo"))
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, created.ID.Hex(), map[string]interface{}{
		"description": "short",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// The stored record is untouched.
	fetched, err := svc.GetItem(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "A reasonably long product description", fetched.Description)
}

func TestItemService_UpdateUnknownID(t *testing.T) {
	svc, _, _, _ := newItemService()

	_, err := svc.UpdateItem(context.Background(), "64b4f0c2a1b2c3d4e5f60718", map[string]interface{}{
		"name": "Ghost",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestItemService_DeleteIsIdempotent(t *testing.T) {
	svc, _, _, _ := newItemService()
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, newItem("Laptop", "Lenovo"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, created.ID.Hex()))
	// Deleting the same id again still succeeds.
	require.NoError(t, svc.DeleteItem(ctx, created.ID.Hex()))

	_, err = svc.GetItem(ctx, created.ID.Hex())
	assert.True(t, apperr.IsNotFound(err))
}
