package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wtfrudb/movie-catalog/pkg/logger"
	"github.com/wtfrudb/movie-catalog/storefront/internal/checkout"
	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
	"github.com/wtfrudb/movie-catalog/storefront/internal/guard"
	"github.com/wtfrudb/movie-catalog/storefront/internal/rentalapi"
)

type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf(r.Context(), "failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{Error: message, Code: code})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps an operation failure to a response. A rejected
// credential logs the browser out and points it at the login page.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, rentalapi.ErrUnauthorized) || errors.Is(err, checkout.ErrNotAuthenticated) {
		if b := browserFrom(r.Context()); b != nil {
			b.Session.Logout(r.Context())
		}
		respondJSON(w, r, http.StatusUnauthorized, ErrorResponse{
			Error:    "session expired, sign in again",
			Code:     "unauthorized",
			Redirect: guard.LoginPath,
		})
		return
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, r, http.StatusBadRequest, "empty_cart", err.Error())
		return
	case errors.Is(err, checkout.ErrMissingReturnDate):
		respondError(w, r, http.StatusBadRequest, "missing_return_date", err.Error())
		return
	case errors.Is(err, domain.ErrInvalidMovie), errors.Is(err, rentalapi.ErrInvalidRegistration):
		respondError(w, r, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	var apiErr *rentalapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			respondError(w, r, apiErr.StatusCode, "rejected", apiErr.Message)
			return
		}
		respondError(w, r, http.StatusBadGateway, "upstream_error", apiErr.Message)
		return
	}

	if errors.Is(err, rentalapi.ErrTransport) {
		respondError(w, r, http.StatusServiceUnavailable, "service_unavailable", "rental service is unreachable, try again later")
		return
	}

	logger.Errorf(r.Context(), "unhandled error: %v", err)
	respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
}
