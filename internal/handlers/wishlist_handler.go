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

// WishListHandler handles HTTP requests related to wishlists.
type WishListHandler struct {
	Service *services.WishListService
}

// NewWishListHandler creates a new instance of WishListHandler.
func NewWishListHandler(service *services.WishListService) *WishListHandler {
	return &WishListHandler{Service: service}
}

// itemRef is the body for addItem/removeItem requests.
type itemRef struct {
	ItemID string `json:"itemId"`
}

// GetWishListsHandler returns all wishlists.
func (h *WishListHandler) GetWishListsHandler(w http.ResponseWriter, r *http.Request) {
	wishLists, err := h.Service.GetWishLists(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if wishLists == nil {
		wishLists = []models.WishList{}
	}
	respondJSON(w, http.StatusOK, wishLists)
}

// GetWishListHandler returns a single wishlist by ID.
func (h *WishListHandler) GetWishListHandler(w http.ResponseWriter, r *http.Request) {
	wishListID := mux.Vars(r)["id"]

	wishList, err := h.Service.GetWishList(r.Context(), wishListID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wishList)
}

// GetWishListsByUserHandler returns every wishlist owned by the given user.
func (h *WishListHandler) GetWishListsByUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	wishLists, err := h.Service.GetWishListsByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if wishLists == nil {
		wishLists = []models.WishList{}
	}
	respondJSON(w, http.StatusOK, wishLists)
}

// CreateWishListHandler creates a new wishlist from the request body.
func (h *WishListHandler) CreateWishListHandler(w http.ResponseWriter, r *http.Request) {
	var wishList models.WishList
	if err := json.NewDecoder(r.Body).Decode(&wishList); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during wishlist creation")
		respondError(w, apperr.Malformed("invalid request payload"))
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateWishList(r.Context(), &wishList)
	if err != nil {
		respondError(w, err)
		return
	}

	logrus.WithField("wishListID", created.ID.Hex()).Info("WishList successfully created")
	respondJSON(w, http.StatusCreated, created)
}

// UpdateWishListHandler applies a partial update and returns the post-update
// document.
func (h *WishListHandler) UpdateWishListHandler(w http.ResponseWriter, r *http.Request) {
	wishListID := mux.Vars(r)["id"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid update payload for wishlist")
		respondError(w, apperr.Malformed("invalid update payload"))
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateWishList(r.Context(), wishListID, updates)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// AddItemHandler appends an item to the wishlist and returns the updated
// document.
func (h *WishListHandler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	wishListID := mux.Vars(r)["id"]

	ref, err := decodeItemRef(r)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.Service.AddItem(r.Context(), wishListID, ref.ItemID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// RemoveItemHandler removes every occurrence of an item from the wishlist
// and returns the updated document.
func (h *WishListHandler) RemoveItemHandler(w http.ResponseWriter, r *http.Request) {
	wishListID := mux.Vars(r)["id"]

	ref, err := decodeItemRef(r)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.Service.RemoveItem(r.Context(), wishListID, ref.ItemID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteWishListHandler removes a wishlist.
func (h *WishListHandler) DeleteWishListHandler(w http.ResponseWriter, r *http.Request) {
	wishListID := mux.Vars(r)["id"]

	if err := h.Service.DeleteWishList(r.Context(), wishListID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "WishList deleted successfully."})
}

func decodeItemRef(r *http.Request) (*itemRef, error) {
	var ref itemRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		logrus.WithError(err).Warn("Invalid item reference payload")
		return nil, apperr.Malformed("invalid request payload")
	}
	defer r.Body.Close()

	if ref.ItemID == "" {
		return nil, apperr.Malformed("itemId is required")
	}
	return &ref, nil
}
