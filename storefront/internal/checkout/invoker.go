// Package checkout turns a browser's cart into a rental on the remote API.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/wtfrudb/movie-catalog/pkg/logger"
	"github.com/wtfrudb/movie-catalog/storefront/internal/browser"
	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
	"github.com/wtfrudb/movie-catalog/storefront/internal/rentalapi"
)

const SuccessMessage = "rental created"

// RentalCreator submits a rental to the remote API.
type RentalCreator interface {
	CreateRental(ctx context.Context, token string, req domain.RentalRequest) error
}

// Notifier is told about rentals the remote API accepted.
type Notifier interface {
	RentalCreated(ctx context.Context, browserID string, req domain.RentalRequest) error
}

type Result struct {
	Message string `json:"message"`
	Items   int    `json:"items"`
}

// Invoker places rentals for a browser's cart.
type Invoker struct {
	rentals  RentalCreator
	notifier Notifier
}

// NewInvoker builds an invoker. notifier may be nil.
func NewInvoker(rentals RentalCreator, notifier Notifier) *Invoker {
	return &Invoker{rentals: rentals, notifier: notifier}
}

// Checkout submits every cart line with returnDate in a single request.
// The cart is cleared only when the remote API accepts the rental.
func (i *Invoker) Checkout(ctx context.Context, b *browser.Browser, returnDate string) (Result, error) {
	if !b.Session.State().Authenticated {
		return Result{}, ErrNotAuthenticated
	}

	lines := b.Cart.Snapshot()
	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}

	returnDate = strings.TrimSpace(returnDate)
	if returnDate == "" {
		return Result{}, ErrMissingReturnDate
	}

	req := Request(lines, returnDate)
	if err := i.rentals.CreateRental(ctx, b.Session.Token(), req); err != nil {
		if errors.Is(err, rentalapi.ErrUnauthorized) {
			b.Session.Logout(ctx)
		}
		logger.Warnf(ctx, "checkout of %d lines failed: %v", len(lines), err)
		return Result{}, err
	}

	b.Cart.Clear(ctx)

	if i.notifier != nil {
		if err := i.notifier.RentalCreated(ctx, b.ID, req); err != nil {
			logger.Errorf(ctx, "rental created but event not published: %v", err)
		}
	}

	return Result{Message: SuccessMessage, Items: len(lines)}, nil
}

// Request builds the rental payload, one item per cart line.
func Request(lines []domain.CartLine, returnDate string) domain.RentalRequest {
	items := make([]domain.RentalRequestItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.RentalRequestItem{
			MovieID:    line.Movie.ID,
			Quantity:   line.Quantity,
			ReturnDate: returnDate,
		})
	}
	return domain.RentalRequest{Items: items}
}
