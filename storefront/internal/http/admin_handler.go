package http

import (
	"context"
	"net/http"
	"time"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

type MovieAPI interface {
	MovieLister
	CreateMovie(ctx context.Context, token string, movie domain.Movie) (domain.Movie, error)
	UpdateMovie(ctx context.Context, token string, id int64, movie domain.Movie) (domain.Movie, error)
	DeleteMovie(ctx context.Context, token string, id int64) error
}

type AdminHandler struct {
	movies MovieAPI
	now    func() time.Time
}

func NewAdminHandler(movies MovieAPI) *AdminHandler {
	return &AdminHandler{movies: movies, now: time.Now}
}

func (h *AdminHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movies.ListMovies(r.Context(), browserFrom(r.Context()).Session.Token())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, CatalogResponseDTO{Movies: movies})
}

func (h *AdminHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var movie domain.Movie
	if err := decodeJSON(r, &movie); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := movie.Validate(h.now()); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.movies.CreateMovie(r.Context(), browserFrom(r.Context()).Session.Token(), movie)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (h *AdminHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	var movie domain.Movie
	if err := decodeJSON(r, &movie); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := movie.Validate(h.now()); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.movies.UpdateMovie(r.Context(), browserFrom(r.Context()).Session.Token(), id, movie)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	if err := h.movies.DeleteMovie(r.Context(), browserFrom(r.Context()).Session.Token(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
