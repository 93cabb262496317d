package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"reunion-backend/pkg/auth"
)

// Authenticate validates the bearer token on every request and attaches the
// caller to the request context. Tokens are checked locally against the
// project JWT secret rather than round-tripping to the auth provider.
func Authenticate(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(100)     // 100 requests per minute per IP
	userLimiter := auth.NewUserRateLimiter(200) // 200 requests per minute per user

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			allowed, err := ipLimiter.Allow(r.Context(), clientIP)
			if err != nil {
				logger.Error("Rate limiter error", zap.Error(err))
				respondWithError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !allowed {
				respondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "Missing authentication token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
				)

				switch err {
				case auth.ErrExpiredToken:
					respondUnauthorized(w, "Token has expired")
				case auth.ErrInvalidSignature:
					respondUnauthorized(w, "Invalid token signature")
				default:
					respondUnauthorized(w, "Invalid token")
				}
				return
			}

			allowed, err = userLimiter.Allow(r.Context(), claims.UserID())
			if err != nil {
				logger.Error("User rate limiter error", zap.Error(err))
				respondWithError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !allowed {
				respondWithError(w, http.StatusTooManyRequests, "User rate limit exceeded")
				return
			}

			userCtx := &auth.UserContext{
				UserID:      claims.UserID(),
				Email:       claims.Email,
				DisplayName: claims.DisplayName(),
				AccessToken: token,
			}

			ctx := auth.SetUserInContext(r.Context(), userCtx)

			logger.Debug("Request authenticated",
				zap.String("user_id", claims.UserID()),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return authHeader
}

// getClientIP extracts the client IP address
func getClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

// respondUnauthorized sends an unauthorized response
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    http.StatusUnauthorized,
	})
}

// respondWithError sends an error response with a specific status code
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    code,
	})
}
