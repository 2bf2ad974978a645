package http

import (
	"context"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
	"github.com/wtfrudb/movie-catalog/storefront/internal/rentalapi"
)

type mockAPI struct {
	LoginResult rentalapi.LoginResult
	LoginErr    error
	RegisterErr error
	Registered  []rentalapi.Registration

	Movies    []domain.Movie
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
	Created   []domain.Movie
	Updated   map[int64]domain.Movie
	Deleted   []int64

	Rentals         []domain.RentalOrder
	RentalsErr      error
	CancelErr       error
	Cancelled       []int64
	CreateRentalErr error
	RentalRequests  []domain.RentalRequest

	Tokens []string
}

func (m *mockAPI) Login(_ context.Context, _, _ string) (rentalapi.LoginResult, error) {
	if m.LoginErr != nil {
		return rentalapi.LoginResult{}, m.LoginErr
	}
	return m.LoginResult, nil
}

func (m *mockAPI) Register(_ context.Context, reg rentalapi.Registration) error {
	if m.RegisterErr != nil {
		return m.RegisterErr
	}
	m.Registered = append(m.Registered, reg)
	return nil
}

func (m *mockAPI) ListMovies(_ context.Context, token string) ([]domain.Movie, error) {
	m.Tokens = append(m.Tokens, token)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Movies, nil
}

func (m *mockAPI) CreateMovie(_ context.Context, token string, movie domain.Movie) (domain.Movie, error) {
	m.Tokens = append(m.Tokens, token)
	if m.CreateErr != nil {
		return domain.Movie{}, m.CreateErr
	}
	movie.ID = int64(100 + len(m.Created))
	m.Created = append(m.Created, movie)
	return movie, nil
}

func (m *mockAPI) UpdateMovie(_ context.Context, token string, id int64, movie domain.Movie) (domain.Movie, error) {
	m.Tokens = append(m.Tokens, token)
	if m.UpdateErr != nil {
		return domain.Movie{}, m.UpdateErr
	}
	if m.Updated == nil {
		m.Updated = make(map[int64]domain.Movie)
	}
	movie.ID = id
	m.Updated[id] = movie
	return movie, nil
}

func (m *mockAPI) DeleteMovie(_ context.Context, token string, id int64) error {
	m.Tokens = append(m.Tokens, token)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *mockAPI) CreateRental(_ context.Context, token string, req domain.RentalRequest) error {
	m.Tokens = append(m.Tokens, token)
	if m.CreateRentalErr != nil {
		return m.CreateRentalErr
	}
	m.RentalRequests = append(m.RentalRequests, req)
	return nil
}

func (m *mockAPI) ListMyRentals(_ context.Context, token string) ([]domain.RentalOrder, error) {
	m.Tokens = append(m.Tokens, token)
	if m.RentalsErr != nil {
		return nil, m.RentalsErr
	}
	return m.Rentals, nil
}

func (m *mockAPI) CancelRental(_ context.Context, token string, id int64) error {
	m.Tokens = append(m.Tokens, token)
	if m.CancelErr != nil {
		return m.CancelErr
	}
	m.Cancelled = append(m.Cancelled, id)
	return nil
}
