package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/security"
)

var errMissingToken = errors.New("authorization token is not provided")

// AuthMiddleware resolves each route's security level from the endpoint
// map and validates the bearer token accordingly. Routes not in the map
// require an access token.
func AuthMiddleware(tm security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			level := config.GetSecurityLevel(routeKey(r))
			if level == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}

			token, err := extractBearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			switch level {
			case config.SecurityAccess:
				if claims.Type != security.TokenTypeAccess {
					writeError(w, http.StatusUnauthorized, "access token required")
					return
				}
			case config.SecurityRefresh:
				if claims.Type != security.TokenTypeRefresh {
					writeError(w, http.StatusUnauthorized, "refresh token required")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// routeKey builds the "METHOD template" lookup key for the security map.
func routeKey(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return r.Method + " " + r.URL.Path
	}
	template, err := route.GetPathTemplate()
	if err != nil {
		return r.Method + " " + r.URL.Path
	}
	return r.Method + " " + template
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingToken
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:], nil
	}
	return header, nil
}

// LoggingMiddleware records each request at debug level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
