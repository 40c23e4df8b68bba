package web

import (
	"context"
	"net/http"

	"github.com/maxmalik/FORE/controller"
	"github.com/maxmalik/FORE/logging"
	"github.com/maxmalik/FORE/session"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const sessionCookie = "fore_session"

type ctxKey int

const sessionKey ctxKey = iota

// sessionMiddleware loads the visitor's session, starting a new one when the
// cookie is missing or stale, and puts it in the request context.
func sessionMiddleware(ctrl controller.C, render *render.Render, logger *zap.Logger, cookieSecure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(sessionCookie); err == nil {
				id = c.Value
			}

			sess, isNew, err := ctrl.LoadSession(r.Context(), id)
			if err != nil {
				logging.ForRequest(logger, r).Error("error loading session", zap.Error(err))
				render.HTML(w, http.StatusInternalServerError, "500", "Your session could not be loaded. Please try again later.")
				return
			}
			if isNew {
				setSessionCookie(w, sess.ID, cookieSecure)
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// requireLogin sends visitors without a user in their session to the login
// page.
func requireLogin(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if !getSession(r).LoggedIn() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

// getSession returns the session sessionMiddleware stored for r.
func getSession(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey).(*session.Session)
	return sess
}

func setSessionCookie(w http.ResponseWriter, id string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
