package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/internal/services"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const defaultTopRatedLimit = 10

// ItemHandler handles HTTP requests related to items.
type ItemHandler struct {
	Service *services.ItemService
}

// NewItemHandler creates a new instance of ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{Service: service}
}

// GetItemsHandler returns all items.
func (h *ItemHandler) GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetItems(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

// GetItemHandler returns a single item by ID.
func (h *ItemHandler) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	item, err := h.Service.GetItem(r.Context(), itemID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// CreateItemHandler creates a new item from the request body.
func (h *ItemHandler) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during item creation")
		respondError(w, apperr.Malformed("invalid request payload"))
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateItem(r.Context(), &item)
	if err != nil {
		respondError(w, err)
		return
	}

	logrus.WithField("itemID", created.ID.Hex()).Info("Item successfully created")
	respondJSON(w, http.StatusCreated, created)
}

// UpdateItemHandler applies a partial update and returns the post-update
// document.
func (h *ItemHandler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid update payload for item")
		respondError(w, apperr.Malformed("invalid update payload"))
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateItem(r.Context(), itemID, updates)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteItemHandler removes an item. Deleting an unknown ID still succeeds.
func (h *ItemHandler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	if err := h.Service.DeleteItem(r.Context(), itemID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully."})
}

// GetItemsByCategoryHandler returns all items of the named category.
func (h *ItemHandler) GetItemsByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	items, err := h.Service.GetItemsByCategory(r.Context(), name)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

// GetItemsByBrandHandler returns all items of the given brand.
func (h *ItemHandler) GetItemsByBrandHandler(w http.ResponseWriter, r *http.Request) {
	brand := mux.Vars(r)["name"]

	items, err := h.Service.GetItemsByBrand(r.Context(), brand)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

// SearchItemsHandler returns items matching the keyword.
func (h *ItemHandler) SearchItemsHandler(w http.ResponseWriter, r *http.Request) {
	text := mux.Vars(r)["text"]

	items, err := h.Service.SearchItems(r.Context(), text)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

// GetTopRatedItemsHandler returns items ranked by average review rating.
// An optional ?limit= caps the result count.
func (h *ItemHandler) GetTopRatedItemsHandler(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultTopRatedLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			respondError(w, apperr.Malformed("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	items, err := h.Service.GetTopRatedItems(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}
