package http

import (
	"context"
	"net/http"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

type MovieLister interface {
	ListMovies(ctx context.Context, token string) ([]domain.Movie, error)
}

type CatalogHandler struct {
	movies MovieLister
}

func NewCatalogHandler(movies MovieLister) *CatalogHandler {
	return &CatalogHandler{movies: movies}
}

type CatalogResponseDTO struct {
	Movies []domain.Movie `json:"movies"`
	Query  string         `json:"query,omitempty"`
}

// List returns the catalog, filtered by the q parameter when present.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	b := browserFrom(r.Context())

	movies, err := h.movies.ListMovies(r.Context(), b.Session.Token())
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query().Get("q")
	filtered := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Matches(q) {
			filtered = append(filtered, m)
		}
	}

	respondJSON(w, r, http.StatusOK, CatalogResponseDTO{Movies: filtered, Query: q})
}
