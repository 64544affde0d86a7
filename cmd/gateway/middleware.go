package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

const (
	shopperHeader = "X-Shopper-ID"
	shopperCookie = "shopper_id"

	maxShopperIDLen = 128
)

type shopperKey struct{}

// withShopper resolves the shopper id from the header or cookie, issuing a
// new cookie on first contact. A malformed header is rejected; a malformed
// cookie is replaced.
func withShopper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(shopperHeader))
		if id != "" && !validShopperID(id) {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT",
				"shopper id must be 1-128 letters, digits, '.', '_' or '-'")
			return
		}
		if id == "" {
			if c, err := r.Cookie(shopperCookie); err == nil && validShopperID(c.Value) {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     shopperCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), shopperKey{}, id)))
	})
}

func validShopperID(id string) bool {
	if id == "" || len(id) > maxShopperIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

func shopperID(r *http.Request) string {
	id, _ := r.Context().Value(shopperKey{}).(string)
	return id
}

// traced starts a server span per request, continuing any incoming trace.
func traced(next http.Handler) http.Handler {
	tracer := otel.Tracer("mastice/gateway")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		span.SetAttributes(
			attribute.String("http.route", chi.RouteContext(r.Context()).RoutePattern()),
			attribute.Int("http.status_code", ww.Status()),
		)
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("took", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
