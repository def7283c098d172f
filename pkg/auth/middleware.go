package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/firestorm-arena/firestorm/pkg/utils"
)

type ContextKey string

// UserIDKey is the request-context key the middleware stores the
// authenticated user id under.
const UserIDKey ContextKey = "userID"

// AuthMiddleware rejects requests without a valid Bearer token and puts the
// token's user id on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	jwtService := &JWTService{}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "You must be logged in")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "You must be logged in")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
