// Package http contains HTTP delivery implementations for the application
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/kindaboxs/meetboxs/pkg/api"
	"github.com/kindaboxs/meetboxs/pkg/jwt"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

type contextKey string

// callerIDKey carries the authenticated user's ID through the request context
const callerIDKey contextKey = "caller_id"

// CallerID returns the authenticated user's ID set by JWTMiddleware,
// or the empty string when the request is unauthenticated
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(callerIDKey).(string)
	return id
}

// LoggingMiddleware adds detailed request logging
// The middleware logs information about each HTTP request including method, path, status, duration, and client information
func LoggingMiddleware(appLogger logger.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			appLogger.InfoContext(r.Context(), "HTTP request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// JWTMiddleware validates JWT tokens for protected routes
// It extracts the Authorization header, validates the token, and adds the
// caller's user ID to the request context
// Returns a 401 status code for missing or invalid tokens
func JWTMiddleware(jwtClient jwt.JWTClient, appLogger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				appLogger.WarnContext(ctx, "Missing Authorization header")
				apiClient.Unauthorized(ctx, w, "Missing Authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if len(authHeader) <= len(bearerPrefix) || authHeader[:len(bearerPrefix)] != bearerPrefix {
				appLogger.WarnContext(ctx, "Invalid Authorization header format")
				apiClient.Unauthorized(ctx, w, "Invalid Authorization header format")
				return
			}

			tokenString := authHeader[len(bearerPrefix):]

			claims, err := jwtClient.ValidateAccessToken(tokenString)
			if err != nil {
				appLogger.WarnContext(ctx, "Invalid access token", "error", err)
				apiClient.Unauthorized(ctx, w, "Invalid access token")
				return
			}

			ctx = context.WithValue(ctx, callerIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
