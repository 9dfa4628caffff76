package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"aquaBack/internal/handlers"
	"aquaBack/internal/models"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	app.errorLog.Output(2, fmt.Sprintf("%s\n", err.Error()))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// requireAuth validates the access token, checks the role against the allowed
// set, and puts the actor on the request context.
func (app *application) requireAuth(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Authorization header missing or invalid", http.StatusUnauthorized)
				return
			}
			accessToken := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := app.tokenManager.Parse(accessToken)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			// Admins pass every role gate, including the empty (admin-only) one.
			role := models.Role(claims.Role)
			permitted := role == models.RoleAdmin
			for _, a := range allowed {
				if role == a {
					permitted = true
					break
				}
			}
			if !permitted {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			actor := models.Actor{ID: claims.UserID, Role: role, BusinessID: claims.BusinessID}
			next.ServeHTTP(w, r.WithContext(handlers.WithActor(r.Context(), actor)))
		})
	}
}

// requireSubscription blocks manager features for businesses whose trial and
// subscription have both lapsed. Admins pass through.
func (app *application) requireSubscription(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := handlers.ActorFrom(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if actor.Role == models.RoleAdmin {
			next.ServeHTTP(w, r)
			return
		}

		biz, err := app.businessRepo.GetByID(r.Context(), actor.BusinessID)
		if err != nil {
			http.Error(w, "Business not found", http.StatusForbidden)
			return
		}
		if !biz.SubscriptionActiveAt(time.Now()) {
			http.Error(w, models.ErrSubscriptionExpired.Error(), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
