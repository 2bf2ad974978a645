// Package http is the storefront's HTTP surface.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wtfrudb/movie-catalog/storefront/internal/browser"
	"github.com/wtfrudb/movie-catalog/storefront/internal/checkout"
	"github.com/wtfrudb/movie-catalog/storefront/internal/guard"
)

type RemoteAPI interface {
	AuthAPI
	MovieAPI
	RentalAPI
}

type RouterConfig struct {
	Registry       *browser.Registry
	API            RemoteAPI
	Invoker        *checkout.Invoker
	Logger         *zap.SugaredLogger
	RequestTimeout time.Duration
	CookieSecure   bool
}

func NewRouter(cfg RouterConfig) chi.Router {
	auth := NewAuthHandler(cfg.API)
	catalog := NewCatalogHandler(cfg.API)
	carts := NewCartHandler(cfg.Invoker)
	orders := NewOrdersHandler(cfg.API)
	admin := NewAdminHandler(cfg.API)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware(cfg.Logger))
	r.Use(RequestLogMiddleware)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Compress(5))

	identify := BrowserMiddleware(cfg.Registry, cfg.CookieSecure)
	// set before any subrouter is mounted so they inherit it
	r.NotFound(identify(http.HandlerFunc(fallback)).ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(identify)

		r.Post("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware(sessionOf))

			r.Get(guard.LoginPath, auth.Page)
			r.Post(guard.LoginPath, auth.Login)
			r.Get(guard.RegisterPath, auth.Page)
			r.Post(guard.RegisterPath, auth.Register)

			r.Get(guard.CatalogPath, catalog.List)

			r.Route(guard.CartPath, func(r chi.Router) {
				r.Get("/", carts.GetCart)
				r.Delete("/", carts.ClearCart)
				r.Post("/items", carts.AddItem)
				r.Put("/items/{movie_id}", carts.UpdateQuantity)
				r.Delete("/items/{movie_id}", carts.RemoveItem)
				r.Post("/checkout", carts.Checkout)
			})

			r.Route(guard.OrdersPath, func(r chi.Router) {
				r.Get("/", orders.List)
				r.Delete("/{order_id}", orders.Cancel)
			})

			// admin home is the movie list
			r.Get(guard.AdminPath, admin.ListMovies)
			r.Route(guard.AdminPath+"/movies", func(r chi.Router) {
				r.Get("/", admin.ListMovies)
				r.Post("/", admin.CreateMovie)
				r.Put("/{movie_id}", admin.UpdateMovie)
				r.Delete("/{movie_id}", admin.DeleteMovie)
			})
		})
	})

	return r
}

// fallback sends unknown destinations wherever the guard says.
func fallback(w http.ResponseWriter, r *http.Request) {
	d := guard.Decide(r.URL.Path, sessionOf(r))
	if !d.Allow {
		http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
		return
	}
	respondError(w, r, http.StatusNotFound, "not_found", "no such page")
}
