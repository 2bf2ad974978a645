package rentalapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

// GET /api/movies. Concurrent calls with the same token share one request.
// The shared request is detached from any single caller; each caller stops
// waiting when its own context ends.
func (c *Client) ListMovies(ctx context.Context, token string) ([]domain.Movie, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.sfg.DoChan("movies:"+token, func() (interface{}, error) {
		var movies []domain.Movie
		if err := c.do(detached, http.MethodGet, c.serverURL.JoinPath("api", "movies"), token, nil, &movies); err != nil {
			return nil, err
		}
		return movies, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	shared := res.Val.([]domain.Movie)
	movies := make([]domain.Movie, len(shared))
	copy(movies, shared)
	return movies, nil
}

// POST /api/movies
func (c *Client) CreateMovie(ctx context.Context, token string, movie domain.Movie) (domain.Movie, error) {
	var created domain.Movie
	if err := c.do(ctx, http.MethodPost, c.serverURL.JoinPath("api", "movies"), token, movie, &created); err != nil {
		return domain.Movie{}, err
	}
	return created, nil
}

// PUT /api/movies/{id}
func (c *Client) UpdateMovie(ctx context.Context, token string, id int64, movie domain.Movie) (domain.Movie, error) {
	movie.ID = id
	var updated domain.Movie
	u := c.serverURL.JoinPath("api", "movies", strconv.FormatInt(id, 10))
	if err := c.do(ctx, http.MethodPut, u, token, movie, &updated); err != nil {
		return domain.Movie{}, err
	}
	if updated.ID == 0 {
		// some deployments answer 204 to PUT
		updated = movie
	}
	return updated, nil
}

// DELETE /api/movies/{id}
func (c *Client) DeleteMovie(ctx context.Context, token string, id int64) error {
	u := c.serverURL.JoinPath("api", "movies", strconv.FormatInt(id, 10))
	return c.do(ctx, http.MethodDelete, u, token, nil, nil)
}
