package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wtfrudb/movie-catalog/storefront/internal/checkout"
	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

type CartHandler struct {
	invoker *checkout.Invoker
}

func NewCartHandler(invoker *checkout.Invoker) *CartHandler {
	return &CartHandler{invoker: invoker}
}

type AddItemRequestDTO struct {
	Movie domain.Movie `json:"movie"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequestDTO struct {
	ReturnDate string `json:"return_date"`
}

type CartResponseDTO struct {
	Items         []domain.CartLine `json:"items"`
	Lines         int               `json:"lines"`
	TotalQuantity int               `json:"total_quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondCart(w, r, http.StatusOK)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Movie.ID <= 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_movie_id", "movie id must be positive")
		return
	}

	browserFrom(r.Context()).Cart.AddItem(r.Context(), req.Movie)
	respondCart(w, r, http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// zero or negative removes the line
	browserFrom(r.Context()).Cart.SetQuantity(r.Context(), movieID, req.Quantity)
	respondCart(w, r, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	browserFrom(r.Context()).Cart.RemoveItem(r.Context(), movieID)
	respondCart(w, r, http.StatusOK)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	browserFrom(r.Context()).Cart.Clear(r.Context())
	respondCart(w, r, http.StatusOK)
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	res, err := h.invoker.Checkout(r.Context(), browserFrom(r.Context()), req.ReturnDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, res)
}

func respondCart(w http.ResponseWriter, r *http.Request, status int) {
	c := browserFrom(r.Context()).Cart
	respondJSON(w, r, status, CartResponseDTO{
		Items:         c.Snapshot(),
		Lines:         c.Len(),
		TotalQuantity: c.TotalQuantity(),
	})
}

func movieIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return positiveIDParam(w, r, "movie_id")
}

func positiveIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_"+name, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
