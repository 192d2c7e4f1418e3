// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/talent-screener/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// actorKey is the context key for storing the authenticated actor.
const actorKey ContextKey = "actor"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (ActorGetter, error)
}

// ActorGetter is an interface for extracting the actor from token claims.
type ActorGetter interface {
	GetUserID() uuid.UUID
	GetRole() types.ActorRole
}

// Auth creates middleware that validates JWT tokens and adds the
// authenticated actor to the request context.
func Auth(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			actor := types.Actor{ID: claims.GetUserID(), Role: claims.GetRole()}
			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActor extracts the authenticated actor from the request context.
func GetActor(r *http.Request) (types.Actor, error) {
	actor, ok := r.Context().Value(actorKey).(types.Actor)
	if !ok {
		return types.Actor{}, fmt.Errorf("actor not found in request context")
	}
	return actor, nil
}

// WithActor returns a context carrying the actor (for testing purposes).
func WithActor(ctx context.Context, actor types.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}
