package handlers

import (
	"context"
	"net/http"
	"strconv"

	"aquaBack/internal/models"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

func getIntParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(getParam(r, name))
}

type contextKey string

const actorContextKey = contextKey("actor")

// WithActor attaches the authenticated principal to the request context. Set
// by the auth middleware, read by every handler.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

func ActorFrom(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(models.Actor)
	return actor, ok
}

func requireActor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := ActorFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return actor, ok
}
