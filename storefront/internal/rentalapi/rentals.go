package rentalapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

// POST /api/rental/create
func (c *Client) CreateRental(ctx context.Context, token string, req domain.RentalRequest) error {
	return c.do(ctx, http.MethodPost, c.serverURL.JoinPath("api", "rental", "create"), token, req, nil)
}

// GET /api/rental/my
func (c *Client) ListMyRentals(ctx context.Context, token string) ([]domain.RentalOrder, error) {
	var orders []domain.RentalOrder
	if err := c.do(ctx, http.MethodGet, c.serverURL.JoinPath("api", "rental", "my"), token, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.RentalOrder{}
	}
	return orders, nil
}

// DELETE /api/rental/{id}
func (c *Client) CancelRental(ctx context.Context, token string, id int64) error {
	u := c.serverURL.JoinPath("api", "rental", strconv.FormatInt(id, 10))
	return c.do(ctx, http.MethodDelete, u, token, nil, nil)
}
