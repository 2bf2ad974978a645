package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wtfrudb/movie-catalog/pkg/logger"
	"github.com/wtfrudb/movie-catalog/storefront/internal/browser"
	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

const (
	BrowserCookie    = "rental_browser"
	browserCookieAge = 30 * 24 * time.Hour
)

type browserKey struct{}

func browserFrom(ctx context.Context) *browser.Browser {
	b, _ := ctx.Value(browserKey{}).(*browser.Browser)
	return b
}

func withBrowser(ctx context.Context, b *browser.Browser) context.Context {
	return context.WithValue(ctx, browserKey{}, b)
}

// sessionOf is the guard's view of the requesting browser.
func sessionOf(r *http.Request) domain.Session {
	if b := browserFrom(r.Context()); b != nil {
		return b.Session.State()
	}
	return domain.Session{}
}

// LoggerMiddleware puts a request scoped logger into the context.
func LoggerMiddleware(base *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.ToContext(r.Context(), base)
			if id := middleware.GetReqID(ctx); id != "" {
				ctx = logger.With(ctx, "request_id", id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogMiddleware logs one line per request once it completes.
func RequestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			logger.FromContext(r.Context()).Infow("request",
				"method", r.Method,
				"url", r.URL.String(),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// BrowserMiddleware identifies the browser by cookie, issuing a new id on
// first visit, and attaches its state to the request.
func BrowserMiddleware(registry *browser.Registry, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if browserFrom(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			id := ""
			if c, err := r.Cookie(BrowserCookie); err == nil && browser.ValidID(c.Value) {
				id = c.Value
			} else {
				id = browser.NewID()
				http.SetCookie(w, &http.Cookie{
					Name:     BrowserCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(browserCookieAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := logger.With(r.Context(), "browser_id", id)
			b := registry.Get(ctx, id)
			next.ServeHTTP(w, r.WithContext(withBrowser(ctx, b)))
		})
	}
}
