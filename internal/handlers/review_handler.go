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

// ReviewHandler handles HTTP requests related to reviews.
type ReviewHandler struct {
	Service *services.ReviewService
}

// NewReviewHandler creates a new instance of ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: service}
}

// GetReviewsHandler returns all reviews.
func (h *ReviewHandler) GetReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.GetReviews(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

// GetReviewHandler returns a single review by ID.
func (h *ReviewHandler) GetReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["id"]

	review, err := h.Service.GetReview(r.Context(), reviewID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// GetReviewsByItemHandler returns all reviews for one item.
func (h *ReviewHandler) GetReviewsByItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	reviews, err := h.Service.GetReviewsByItem(r.Context(), itemID)
	if err != nil {
		respondError(w, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

// CreateReviewHandler creates a new review from the request body.
func (h *ReviewHandler) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during review creation")
		respondError(w, apperr.Malformed("invalid request payload"))
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateReview(r.Context(), &review)
	if err != nil {
		respondError(w, err)
		return
	}

	logrus.WithField("reviewID", created.ID.Hex()).Info("Review successfully created")
	respondJSON(w, http.StatusCreated, created)
}

// UpdateReviewHandler applies a partial update and returns the post-update
// document.
func (h *ReviewHandler) UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["id"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logrus.WithError(err).Warn("Invalid update payload for review")
		respondError(w, apperr.Malformed("invalid update payload"))
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateReview(r.Context(), reviewID, updates)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteReviewHandler removes a review.
func (h *ReviewHandler) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["id"]

	if err := h.Service.DeleteReview(r.Context(), reviewID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully."})
}
