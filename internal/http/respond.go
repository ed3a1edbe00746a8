package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gradeshop/catalog-service/internal/catalog"
	"github.com/gradeshop/catalog-service/internal/repository"
	"github.com/gradeshop/catalog-service/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

// handleServiceError maps engine errors to HTTP status codes. Anything not
// classified is a store/internal failure passed through as 500.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, repository.ErrCartItemNotFound):
		respondError(w, http.StatusNotFound, "cart_item_not_found", "item not found in cart")
	case errors.Is(err, service.ErrSelectionIncomplete):
		respondError(w, http.StatusUnprocessableEntity, "selection_incomplete", "pick a size and grade first")
	case errors.Is(err, service.ErrOutOfStock):
		respondError(w, http.StatusConflict, "out_of_stock", "variant is out of stock")
	case errors.Is(err, catalog.ErrNoVariants):
		respondError(w, http.StatusInternalServerError, "data_inconsistency", "product has no variants")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
