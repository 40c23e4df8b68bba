package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maxmalik/FORE/controller"
	"github.com/maxmalik/FORE/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

func getRouter(ctrl controller.C, render *render.Render, logger *zap.Logger, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.NotFound(notFoundHandler(render))

	r.Get("/health", healthHandler(render))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(ctrl, render, logger, opts.CookieSecure))

		r.Get("/", rootHandler(render))
		r.Get("/login", loginPageHandler(render))
		r.Post("/login", loginHandler(ctrl, render, logger))
		r.Get("/register", registerPageHandler(render))
		r.Post("/register", registerHandler(ctrl, render, logger))
		r.Post("/logout", logoutHandler(ctrl, render, logger, opts.CookieSecure))

		r.Group(func(r chi.Router) {
			r.Use(requireLogin)

			r.Get("/main", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			})
			r.Get("/dashboard", dashboardHandler(ctrl, render, logger))

			r.Route("/post-round", func(r chi.Router) {
				r.Get("/", postRoundHandler(ctrl, render))
				r.Post("/search", searchHandler(ctrl, render, logger))
				r.Post("/results/dismiss", hideResultsHandler(ctrl, render, logger))
				r.Post("/results/show", showResultsHandler(ctrl, render, logger))
				r.Post("/select", selectCourseHandler(ctrl, render, logger))
				r.Post("/tee-box", teeBoxHandler(ctrl, render, logger))
				r.Post("/clear", clearCourseHandler(ctrl, render, logger))
				r.Post("/mode", modeHandler(ctrl, render, logger))
				r.Post("/mode/confirm", confirmModeHandler(ctrl, render, logger))
				r.Post("/mode/decline", declineModeHandler(ctrl, render, logger))
				r.Post("/scores", scoresHandler(ctrl, render, logger))
				r.Post("/autofill", autofillHandler(ctrl, render, logger))
				r.Post("/submit", submitHandler(ctrl, render, logger))
			})
		})
	})

	return r
}
