package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Adilet2002/item-service/internal/handlers"
	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/internal/repository"
	"github.com/Adilet2002/item-service/internal/services"
	"github.com/Adilet2002/item-service/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

type testEnv struct {
	router       *mux.Router
	itemRepo     *repository.MockItemRepository
	categoryRepo *repository.MockCategoryRepository
	reviewRepo   *repository.MockReviewRepository
	wishListRepo *repository.MockWishListRepository
}

// newTestEnv wires handlers over the in-memory stores with the same route
// table the server registers.
func newTestEnv() *testEnv {
	env := &testEnv{
		itemRepo:     repository.NewMockItemRepository(),
		categoryRepo: repository.NewMockCategoryRepository(),
		reviewRepo:   repository.NewMockReviewRepository(),
		wishListRepo: repository.NewMockWishListRepository(),
	}

	itemHandler := handlers.NewItemHandler(services.NewItemService(env.itemRepo, env.categoryRepo, env.reviewRepo))
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(env.categoryRepo))
	reviewHandler := handlers.NewReviewHandler(services.NewReviewService(env.reviewRepo))
	wishListHandler := handlers.NewWishListHandler(services.NewWishListService(env.wishListRepo))

	router := mux.NewRouter()

	itemRoutes := router.PathPrefix("/items").Subrouter()
	itemRoutes.HandleFunc("/top", itemHandler.GetTopRatedItemsHandler).Methods("GET")
	itemRoutes.HandleFunc("/category/{name}", itemHandler.GetItemsByCategoryHandler).Methods("GET")
	itemRoutes.HandleFunc("/brand/{name}", itemHandler.GetItemsByBrandHandler).Methods("GET")
	itemRoutes.HandleFunc("/search/{text}", itemHandler.SearchItemsHandler).Methods("GET")
	itemRoutes.HandleFunc("", itemHandler.GetItemsHandler).Methods("GET")
	itemRoutes.HandleFunc("", itemHandler.CreateItemHandler).Methods("POST")
	itemRoutes.HandleFunc("/{id}", itemHandler.GetItemHandler).Methods("GET")
	itemRoutes.HandleFunc("/{id}", itemHandler.UpdateItemHandler).Methods("PUT")
	itemRoutes.HandleFunc("/{id}", itemHandler.DeleteItemHandler).Methods("DELETE")

	categoryRoutes := router.PathPrefix("/categories").Subrouter()
	categoryRoutes.HandleFunc("", categoryHandler.GetCategoriesHandler).Methods("GET")
	categoryRoutes.HandleFunc("", categoryHandler.CreateCategoryHandler).Methods("POST")
	categoryRoutes.HandleFunc("/{id}", categoryHandler.GetCategoryHandler).Methods("GET")
	categoryRoutes.HandleFunc("/{id}", categoryHandler.UpdateCategoryHandler).Methods("PUT")
	categoryRoutes.HandleFunc("/{id}", categoryHandler.DeleteCategoryHandler).Methods("DELETE")

	reviewRoutes := router.PathPrefix("/reviews").Subrouter()
	reviewRoutes.HandleFunc("/item/{id}", reviewHandler.GetReviewsByItemHandler).Methods("GET")
	reviewRoutes.HandleFunc("", reviewHandler.GetReviewsHandler).Methods("GET")
	reviewRoutes.HandleFunc("", reviewHandler.CreateReviewHandler).Methods("POST")
	reviewRoutes.HandleFunc("/{id}", reviewHandler.GetReviewHandler).Methods("GET")
	reviewRoutes.HandleFunc("/{id}", reviewHandler.UpdateReviewHandler).Methods("PUT")
	reviewRoutes.HandleFunc("/{id}", reviewHandler.DeleteReviewHandler).Methods("DELETE")

	wishListRoutes := router.PathPrefix("/wishlists").Subrouter()
	wishListRoutes.HandleFunc("/user/{userId}", wishListHandler.GetWishListsByUserHandler).Methods("GET")
	wishListRoutes.HandleFunc("", wishListHandler.GetWishListsHandler).Methods("GET")
	wishListRoutes.HandleFunc("", wishListHandler.CreateWishListHandler).Methods("POST")
	wishListRoutes.HandleFunc("/{id}/addItem", wishListHandler.AddItemHandler).Methods("PUT")
	wishListRoutes.HandleFunc("/{id}/removeItem", wishListHandler.RemoveItemHandler).Methods("PUT")
	wishListRoutes.HandleFunc("/{id}", wishListHandler.GetWishListHandler).Methods("GET")
	wishListRoutes.HandleFunc("/{id}", wishListHandler.UpdateWishListHandler).Methods("PUT")
	wishListRoutes.HandleFunc("/{id}", wishListHandler.DeleteWishListHandler).Methods("DELETE")

	env.router = router
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func itemPayload(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": "A reasonably long product description",
		"price":       49.90,
		"brand":       "Lenovo",
	}
}

func TestCreateItem(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/items", itemPayload("Laptop"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Item
	decodeBody(t, rec, &created)
	assert.Equal(t, "Laptop", created.Name)
	assert.False(t, created.ID.IsZero())

	rec = env.do(t, http.MethodGet, "/items/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.Item
	decodeBody(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Laptop", fetched.Name)
}

func TestCreateItemValidationFailure(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/items", map[string]interface{}{"name": "Laptop"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body.Message)
	assert.Contains(t, body.Fields, "description")
	assert.Contains(t, body.Fields, "price")
	assert.Contains(t, body.Fields, "brand")
}

func TestGetItemErrors(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/items/not-a-hex-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/items/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteItemIsIdempotent(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodDelete, "/items/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateItemReturnsPostState(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/items", itemPayload("Laptop"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Item
	decodeBody(t, rec, &created)

	rec = env.do(t, http.MethodPut, "/items/"+created.ID.Hex(), map[string]interface{}{
		"name": "Gaming Laptop",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Item
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Gaming Laptop", updated.Name)
	assert.Equal(t, "Lenovo", updated.Brand)
}

func TestItemCategoryRouteIsNotShadowedByID(t *testing.T) {
	env := newTestEnv()

	// "category" must hit the category filter route, not /items/{id}.
	rec := env.do(t, http.MethodGet, "/items/category/Nonexistent", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Item
	decodeBody(t, rec, &items)
	assert.Empty(t, items)
}

func TestSearchItems(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/items", itemPayload("Laptop"))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/items", itemPayload("Desk Chair"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/items/search/lap", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Item
	decodeBody(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Laptop", items[0].Name)
}

func TestTopRatedItems(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	rec := env.do(t, http.MethodPost, "/items", itemPayload("Laptop"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var item models.Item
	decodeBody(t, rec, &item)

	_, err := env.reviewRepo.InsertReview(ctx, &models.Review{Item: item.ID, Rating: 5, Comment: "great"})
	require.NoError(t, err)

	rec = env.do(t, http.MethodGet, "/items/top", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Item
	decodeBody(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	rec = env.do(t, http.MethodGet, "/items/top?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryDuplicateConflict(t *testing.T) {
	env := newTestEnv()

	payload := map[string]interface{}{
		"name":        "Electronics",
		"description": "Electronics category",
	}

	rec := env.do(t, http.MethodPost, "/categories", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/categories", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateReviewAndListByItem(t *testing.T) {
	env := newTestEnv()
	itemID := primitive.NewObjectID()

	rec := env.do(t, http.MethodPost, "/reviews", map[string]interface{}{
		"item":    itemID.Hex(),
		"rating":  5,
		"comment": "excellent",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/reviews/item/"+itemID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []models.Review
	decodeBody(t, rec, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestCreateReviewRatingOutOfRange(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/reviews", map[string]interface{}{
		"item":    primitive.NewObjectID().Hex(),
		"rating":  6,
		"comment": "too good",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	decodeBody(t, rec, &body)
	assert.Contains(t, body.Fields, "rating")
}

func TestWishListLifecycle(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/wishlists", map[string]interface{}{"userId": "alice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.WishList
	decodeBody(t, rec, &created)
	assert.Empty(t, created.Items)

	itemID := primitive.NewObjectID()
	rec = env.do(t, http.MethodPut, "/wishlists/"+created.ID.Hex()+"/addItem", map[string]interface{}{
		"itemId": itemID.Hex(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var afterAdd models.WishList
	decodeBody(t, rec, &afterAdd)
	assert.Equal(t, []primitive.ObjectID{itemID}, afterAdd.Items)

	rec = env.do(t, http.MethodPut, "/wishlists/"+created.ID.Hex()+"/removeItem", map[string]interface{}{
		"itemId": itemID.Hex(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var afterRemove models.WishList
	decodeBody(t, rec, &afterRemove)
	assert.Empty(t, afterRemove.Items)

	rec = env.do(t, http.MethodGet, "/wishlists/user/alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lists []models.WishList
	decodeBody(t, rec, &lists)
	assert.Len(t, lists, 1)
}

func TestWishListAddItemRequiresItemID(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/wishlists", map[string]interface{}{"userId": "alice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.WishList
	decodeBody(t, rec, &created)

	rec = env.do(t, http.MethodPut, "/wishlists/"+created.ID.Hex()+"/addItem", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
