package web

import (
	"errors"
	"net/http"

	"github.com/maxmalik/FORE/controller"
	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/logging"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

func rootHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if getSession(r).LoggedIn() {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		render.HTML(w, http.StatusOK, "home", nil)
	}
}

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func notFoundHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, http.StatusNotFound, "404", "page not found")
	}
}

type authPage struct {
	Alert string
	Form  any
}

func loginPageHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if getSession(r).LoggedIn() {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		render.HTML(w, http.StatusOK, "login", authPage{Form: controller.LoginForm{}})
	}
}

func loginHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		form := controller.LoginForm{
			UsernameOrEmail: r.PostForm.Get("usernameOrEmail"),
			Password:        r.PostForm.Get("password"),
		}
		if err := ctrl.Login(r.Context(), getSession(r), form); err != nil {
			logAuthError(logger, r, "login", err)
			form.Password = ""
			render.HTML(w, authStatus(err), "login", authPage{Alert: controller.AlertMessage(err), Form: form})
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func registerPageHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if getSession(r).LoggedIn() {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		render.HTML(w, http.StatusOK, "register", authPage{Form: controller.RegisterForm{}})
	}
}

func registerHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		form := controller.RegisterForm{
			Name:                 r.PostForm.Get("name"),
			Username:             r.PostForm.Get("username"),
			Email:                r.PostForm.Get("email"),
			Password:             r.PostForm.Get("password"),
			PasswordConfirmation: r.PostForm.Get("passwordConfirmation"),
		}
		if err := ctrl.Register(r.Context(), getSession(r), form); err != nil {
			logAuthError(logger, r, "register", err)
			form.Password = ""
			form.PasswordConfirmation = ""
			render.HTML(w, authStatus(err), "register", authPage{Alert: controller.AlertMessage(err), Form: form})
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func logoutHandler(ctrl controller.C, render *render.Render, logger *zap.Logger, cookieSecure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Logout(r.Context(), getSession(r)); err != nil {
			logging.ForRequest(logger, r).Error("error logging out", zap.Error(err))
			render.HTML(w, http.StatusInternalServerError, "500", "Unable to log out. Please try again.")
			return
		}
		clearSessionCookie(w, cookieSecure)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func dashboardHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := ctrl.Dashboard(r.Context(), getSession(r))
		if err != nil {
			logging.ForRequest(logger, r).Error("error loading dashboard", zap.Error(err))
			render.HTML(w, http.StatusInternalServerError, "500", "Unable to load your dashboard. Please try again later.")
			return
		}
		render.HTML(w, http.StatusOK, "dashboard", d)
	}
}

// authStatus is the status code to render a failed login or register form
// with.
func authStatus(err error) int {
	var formErr *controller.FormError
	if errors.As(err, &formErr) {
		return http.StatusBadRequest
	}
	switch golf.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusNotFound:
		return http.StatusUnauthorized
	case http.StatusConflict:
		return http.StatusConflict
	case http.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func logAuthError(logger *zap.Logger, r *http.Request, action string, err error) {
	var formErr *controller.FormError
	if errors.As(err, &formErr) {
		return
	}
	l := logging.ForRequest(logger, r).With(zap.String("action", action))
	if golf.StatusOf(err) == 0 {
		l.Error("backend unavailable", zap.Error(err))
		return
	}
	l.Info("rejected by backend", zap.Error(err))
}
