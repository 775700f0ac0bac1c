package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// JWTMiddleware validates bearer tokens and injects the username into the request context
func JWTMiddleware(jwtManager JWT, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="secret-gateway"`)
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Expect header in format "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "Authorization header must be Bearer <token>", http.StatusUnauthorized)
			return
		}

		claims, err := jwtManager.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("rejected bearer token")
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := WithUsername(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
