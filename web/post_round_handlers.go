package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/maxmalik/FORE/controller"
	"github.com/maxmalik/FORE/logging"
	"github.com/maxmalik/FORE/model"
	"github.com/maxmalik/FORE/workflow"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const (
	postRoundPath = "/post-round"
	scorePrefix   = "score-"
	skipTeeBox    = "skip"
)

// Errors caused by a request that doesn't fit the state of the round, e.g.
// a stale page posting to it.
var badRequestErrors = []error{
	workflow.ErrBusy,
	workflow.ErrPosted,
	workflow.ErrNoCourse,
	workflow.ErrNoTeeBox,
	workflow.ErrTeeBoxChosen,
	workflow.ErrInvalidTeeBox,
	workflow.ErrModeUnavailable,
	workflow.ErrNoPendingMode,
	workflow.ErrScorecardMismatch,
	workflow.ErrNotAllHoles,
	model.ErrUnknownMode,
	controller.ErrInvalidTarget,
}

func postRoundHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := getSession(r)

		countdown := 0
		if sess.Draft.Status == workflow.StatusPostComplete {
			countdown = ctrl.RedirectCountdown(sess)
			if countdown == 0 {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
		}

		render.HTML(w, http.StatusOK, "postRound", newPostRoundPage(sess.User, sess.Draft, countdown))
	}
}

func searchHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}
		err := ctrl.SearchCourses(r.Context(), getSession(r), r.PostForm.Get("q"))
		afterAction(w, r, render, logger, err)
	}
}

func hideResultsHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		afterAction(w, r, render, logger, ctrl.HideResults(r.Context(), getSession(r)))
	}
}

func showResultsHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		afterAction(w, r, render, logger, ctrl.ShowResults(r.Context(), getSession(r)))
	}
}

func selectCourseHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}
		courseID := r.PostForm.Get("course_id")
		if courseID == "" {
			render.HTML(w, http.StatusBadRequest, "400", "no course was chosen")
			return
		}
		afterAction(w, r, render, logger, ctrl.SelectCourse(r.Context(), getSession(r), courseID))
	}
}

func teeBoxHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		index := model.NoTeeBox
		if v := r.PostForm.Get("index"); v != skipTeeBox {
			i, err := strconv.Atoi(v)
			if err != nil {
				render.HTML(w, http.StatusBadRequest, "400", fmt.Sprintf("error parsing tee box index: %v", err))
				return
			}
			index = i
		}
		afterAction(w, r, render, logger, ctrl.SelectTeeBox(r.Context(), getSession(r), index))
	}
}

func clearCourseHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		afterAction(w, r, render, logger, ctrl.ClearCourse(r.Context(), getSession(r)))
	}
}

// modeHandler switches the scorecard mode. The scores typed into the form are
// saved first, so when they would be lost the page asks for confirmation.
func modeHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !updateScores(ctrl, render, logger, w, r) {
			return
		}
		_, err := ctrl.RequestMode(r.Context(), getSession(r), r.PostForm.Get("mode"))
		afterAction(w, r, render, logger, err)
	}
}

func confirmModeHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		afterAction(w, r, render, logger, ctrl.ConfirmMode(r.Context(), getSession(r)))
	}
}

func declineModeHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		afterAction(w, r, render, logger, ctrl.DeclineMode(r.Context(), getSession(r)))
	}
}

func scoresHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !updateScores(ctrl, render, logger, w, r) {
			return
		}
		http.Redirect(w, r, postRoundPath, http.StatusSeeOther)
	}
}

func autofillHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !updateScores(ctrl, render, logger, w, r) {
			return
		}

		target, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("target")))
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", "Please enter the total score to fill in to.")
			return
		}
		n, err := ctrl.Autofill(r.Context(), getSession(r), target)
		if err == nil {
			logging.ForRequest(logger, r).Debug("filled in scores", zap.Int("holes", n), zap.Int("target", target))
		}
		afterAction(w, r, render, logger, err)
	}
}

// submitHandler saves whatever is in the scorecard form and posts the round.
// Submitting a round that is already on its way goes back to the page, which
// shows how the first submit is doing.
func submitHandler(ctrl controller.C, render *render.Render, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess := getSession(r); sess.Draft.Busy() || sess.Draft.Status == workflow.StatusPostComplete {
			http.Redirect(w, r, postRoundPath, http.StatusSeeOther)
			return
		}
		if !updateScores(ctrl, render, logger, w, r) {
			return
		}

		err := ctrl.SubmitRound(r.Context(), getSession(r))
		if errors.Is(err, workflow.ErrBusy) || errors.Is(err, workflow.ErrPosted) {
			logging.ForRequest(logger, r).Info("round submitted twice", zap.Error(err))
			http.Redirect(w, r, postRoundPath, http.StatusSeeOther)
			return
		}
		afterAction(w, r, render, logger, err)
	}
}

// updateScores applies the scorecard form. It reports false when a response
// has already been written.
func updateScores(ctrl controller.C, render *render.Render, logger *zap.Logger, w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		render.HTML(w, http.StatusBadRequest, "400", err.Error())
		return false
	}

	sess := getSession(r)
	scores := make(map[string]string)
	for k, v := range r.PostForm {
		if key, ok := strings.CutPrefix(k, scorePrefix); ok && len(v) > 0 {
			scores[key] = strings.TrimSpace(v[0])
		}
	}
	caption := sess.Draft.Caption
	if v, ok := r.PostForm["caption"]; ok && len(v) > 0 {
		caption = v[0]
	}
	if len(scores) == 0 && caption == sess.Draft.Caption {
		return true
	}

	rejected, err := ctrl.UpdateScores(r.Context(), sess, scores, caption)
	if err != nil {
		afterAction(w, r, render, logger, err)
		return false
	}
	if len(rejected) > 0 {
		logging.ForRequest(logger, r).Debug("ignored score input", zap.Strings("keys", rejected))
	}
	return true
}

// afterAction finishes a post to the round being composed. Failures the page
// explains itself, through the draft's warning or notice, go back to the page
// like a success does.
func afterAction(w http.ResponseWriter, r *http.Request, render *render.Render, logger *zap.Logger, err error) {
	if err == nil || errors.Is(err, workflow.ErrIncompleteScorecard) {
		http.Redirect(w, r, postRoundPath, http.StatusSeeOther)
		return
	}

	for _, e := range badRequestErrors {
		if errors.Is(err, e) {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}
	}

	if sess := getSession(r); sess != nil && sess.Draft.Notice != "" {
		logging.ForRequest(logger, r).Warn("round action failed", zap.Error(err))
		http.Redirect(w, r, postRoundPath, http.StatusSeeOther)
		return
	}

	logging.ForRequest(logger, r).Error("round action failed", zap.Error(err))
	render.HTML(w, http.StatusInternalServerError, "500", "Something went wrong. Please try again later.")
}
