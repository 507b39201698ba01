package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2002/item-service/internal/models"
	"github.com/Adilet2002/item-service/internal/services"
	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// CategoryHandler handles HTTP requests related to categories.
type CategoryHandler struct {
	Service *services.CategoryService
}

// NewCategoryHandler creates a new instance of CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{Service: service}
}

// GetCategoriesHandler returns all categories.
func (h *CategoryHandler) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

// GetCategoryHandler returns a single category by ID.
func (h *CategoryHandler) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	category, err := h.Service.GetCategory(r.Context(), categoryID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// CreateCategoryHandler creates a new category. A duplicate name yields a
// conflict.
func (h *CategoryHandler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during category creation")
		respondError(w, apperr.Malformed("invalid request payload"))
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateCategory(r.Context(), &category)
	if err != nil {
		respondError(w, err)
		return
	}

	logrus.WithField("categoryID", created.ID.Hex()).Info("Category successfully created")
	respondJSON(w, http.StatusCreated, created)
}

// UpdateCategoryHandler applies a partial update and returns the post-update
// document.
func (h *CategoryHandler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid update payload for category")
		respondError(w, apperr.Malformed("invalid update payload"))
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateCategory(r.Context(), categoryID, updates)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteCategoryHandler removes a category.
func (h *CategoryHandler) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	if err := h.Service.DeleteCategory(r.Context(), categoryID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully."})
}
