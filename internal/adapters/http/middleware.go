package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/PabloGalante/planforge/internal/adapters/auth"
	"github.com/PabloGalante/planforge/internal/observability"
)

const requestIDHeader = "X-Request-ID"

type identityKey struct{}

// withRequestID keeps an incoming X-Request-ID or assigns a new one, and
// stores it in the context for the logger.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := observability.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withLogging logs every request once it completes.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		observability.LoggerFromContext(r.Context()).Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"user_agent", r.UserAgent(),
		)
	})
}

// withCORS allows the configured front-end origins. Requests without an
// Origin header (curl, mobile apps) are not affected.
func withCORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, "X-Planforge-Source"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// withAuth verifies the bearer token and stores the caller's identity.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if header != "" && !ok {
			sendError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		id, err := s.verifier.Verify(r.Context(), strings.TrimSpace(token))
		if err != nil {
			observability.LoggerFromContext(r.Context()).Warn("rejected token", "error", err)
			msg := "Invalid or expired token"
			if token == "" {
				msg = "Authentication required"
			}
			if !errors.Is(err, auth.ErrUnauthenticated) {
				msg = "Authentication failed"
			}
			sendError(w, http.StatusUnauthorized, msg)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey{}).(*auth.Identity); ok {
		return id
	}
	return &auth.Identity{}
}
