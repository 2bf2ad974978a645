package http

import (
	"context"
	"net/http"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

type RentalAPI interface {
	ListMyRentals(ctx context.Context, token string) ([]domain.RentalOrder, error)
	CancelRental(ctx context.Context, token string, id int64) error
}

type OrdersHandler struct {
	rentals RentalAPI
}

func NewOrdersHandler(rentals RentalAPI) *OrdersHandler {
	return &OrdersHandler{rentals: rentals}
}

type OrderDTO struct {
	domain.RentalOrder
	TotalQuantity int `json:"totalQuantity"`
}

type OrdersResponseDTO struct {
	Orders []OrderDTO `json:"orders"`
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	b := browserFrom(r.Context())

	orders, err := h.rentals.ListMyRentals(r.Context(), b.Session.Token())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := OrdersResponseDTO{Orders: make([]OrderDTO, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, OrderDTO{RentalOrder: o, TotalQuantity: o.TotalQuantity()})
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := positiveIDParam(w, r, "order_id")
	if !ok {
		return
	}

	b := browserFrom(r.Context())
	if err := h.rentals.CancelRental(r.Context(), b.Session.Token(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
