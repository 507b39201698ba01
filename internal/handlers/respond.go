package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2002/item-service/pkg/apperr"
	"github.com/sirupsen/logrus"
)

// errorResponse is the JSON body for every failed request. Fields is only
// present on validation failures.
type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logrus.WithError(err).Error("Failed to encode response body")
		}
	}
}

// respondError maps the error kind to the canonical status: 400 malformed or
// invalid input, 404 missing resource, 409 uniqueness conflict, 500 anything
// unexpected. Unexpected failures never leak internal detail to the client.
func respondError(w http.ResponseWriter, err error) {
	var status int
	var message string

	switch apperr.KindOf(err) {
	case apperr.KindMalformed, apperr.KindValidation:
		status = http.StatusBadRequest
		message = apperr.MessageOf(err)
	case apperr.KindNotFound:
		status = http.StatusNotFound
		message = apperr.MessageOf(err)
	case apperr.KindConflict:
		status = http.StatusConflict
		message = apperr.MessageOf(err)
	default:
		status = http.StatusInternalServerError
		message = "internal server error"
		logrus.WithError(err).Error("Unexpected failure while handling request")
	}

	respondJSON(w, status, errorResponse{
		Message: message,
		Fields:  apperr.FieldsOf(err),
	})
}
