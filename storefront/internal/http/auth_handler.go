package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
	"github.com/wtfrudb/movie-catalog/storefront/internal/guard"
	"github.com/wtfrudb/movie-catalog/storefront/internal/rentalapi"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (rentalapi.LoginResult, error)
	Register(ctx context.Context, reg rentalapi.Registration) error
}

type AuthHandler struct {
	api AuthAPI
}

func NewAuthHandler(api AuthAPI) *AuthHandler {
	return &AuthHandler{api: api}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PageResponseDTO describes a public page and who is looking at it.
type PageResponseDTO struct {
	Page    string         `json:"page"`
	Session domain.Session `json:"session"`
	Home    string         `json:"home"`
}

// Page answers GET on the login and register pages, where guard redirects land.
func (h *AuthHandler) Page(w http.ResponseWriter, r *http.Request) {
	s := browserFrom(r.Context()).Session.State()
	respondJSON(w, r, http.StatusOK, PageResponseDTO{Page: r.URL.Path, Session: s, Home: guard.Home(s)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_argument", "email and password are required")
		return
	}

	res, err := h.api.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// wrong credentials, not an expired session
		if errors.Is(err, rentalapi.ErrUnauthorized) {
			respondError(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		writeError(w, r, err)
		return
	}

	b := browserFrom(r.Context())
	b.Session.Login(r.Context(), res.Token, res.IsAdmin())

	respondJSON(w, r, http.StatusOK, RedirectResponse{Redirect: guard.Home(b.Session.State())})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req rentalapi.Registration
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.api.Register(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, RedirectResponse{Redirect: guard.LoginPath})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	browserFrom(r.Context()).Session.Logout(r.Context())
	respondJSON(w, r, http.StatusOK, RedirectResponse{Redirect: guard.LoginPath})
}
