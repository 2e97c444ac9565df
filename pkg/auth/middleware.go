package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/capsule/pkg/httpx"
	"github.com/ghuser/capsule/pkg/logger"
)

const sessionName = "capsule_session"
const sessionUserIDKey = "user_id"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the user ID, and injects it into the
// request context. Returns 401 Unauthorized if the session is missing, invalid,
// or lacks a valid user_id — before any handler work happens.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := resolveUserID(r, store, log)
			if !ok {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the session like RequireAuth but never rejects:
// anonymous requests pass through without a user ID in context. Read handlers
// behind it respond with an empty result set for anonymous callers.
func OptionalAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := resolveUserID(r, store, log); ok {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveUserID(r *http.Request, store sessions.Store, log logger.Logger) (uuid.UUID, bool) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		log.WarnContext(r.Context(), "invalid session cookie", "error", err)
		return uuid.Nil, false
	}

	userIDStr, ok := session.Values[sessionUserIDKey].(string)
	if !ok || userIDStr == "" {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
		return uuid.Nil, false
	}
	return userID, true
}

// SignIn stores userID in the request session and writes the session cookie.
func SignIn(w http.ResponseWriter, r *http.Request, store sessions.Store, userID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		// A tampered cookie yields a fresh session; proceed with it.
		session, _ = store.New(r, sessionName)
	}
	session.Values[sessionUserIDKey] = userID.String()
	return session.Save(r, w)
}

// SignOut expires the session and deletes its server-side state.
func SignOut(w http.ResponseWriter, r *http.Request, store sessions.Store) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return nil // nothing to destroy
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
