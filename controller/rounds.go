package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/maxmalik/FORE/metrics"
	"github.com/maxmalik/FORE/model"
	"github.com/maxmalik/FORE/session"
	"github.com/maxmalik/FORE/workflow"
	"go.uber.org/zap"
)

const (
	SearchFailedNotice   = "Something went wrong searching for courses. Please try again."
	AutofillFailedNotice = "Scores could not be filled in right now. Please try again."
)

var ErrInvalidTarget = errors.New("target total must be positive")

// SearchCourses runs a course search. The session is saved before the
// backend is called and read again afterwards, so that a newer search made
// while this one was running wins.
func (c *controller) SearchCourses(ctx context.Context, sess *session.Session, term string) error {
	token, ok := sess.Draft.BeginSearch(term)
	if err := c.save(ctx, sess); err != nil {
		return err
	}
	if !ok {
		return nil
	}

	results, searchErr := c.golf.SearchCourses(ctx, term)

	latest, err := c.store.Get(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("error reloading session: %w", err)
	}
	*sess = *latest

	if searchErr != nil {
		c.logger.Warn("course search failed", zap.String("term", term), zap.Error(searchErr))
		if sess.Draft.FailSearch(token) {
			sess.Draft.Notice = SearchFailedNotice
			return c.saveAfter(ctx, sess, fmt.Errorf("error searching courses: %w", searchErr))
		}
		return fmt.Errorf("error searching courses: %w", searchErr)
	}

	if !sess.Draft.ApplySearchResults(token, results) {
		metrics.StaleSearchResults.Inc()
		c.logger.Debug("dropping stale search results", zap.String("term", term))
		return nil
	}
	return c.save(ctx, sess)
}

func (c *controller) ShowResults(ctx context.Context, sess *session.Session) error {
	sess.Draft.ShowResults()
	return c.save(ctx, sess)
}

func (c *controller) HideResults(ctx context.Context, sess *session.Session) error {
	sess.Draft.HideResults()
	return c.save(ctx, sess)
}

func (c *controller) SelectCourse(ctx context.Context, sess *session.Session, courseID string) error {
	return c.saveAfter(ctx, sess, sess.Draft.SelectResult(courseID))
}

func (c *controller) SelectTeeBox(ctx context.Context, sess *session.Session, index int) error {
	return c.saveAfter(ctx, sess, sess.Draft.SelectTeeBox(index))
}

func (c *controller) ClearCourse(ctx context.Context, sess *session.Session) error {
	return c.saveAfter(ctx, sess, sess.Draft.ClearCourse())
}

func (c *controller) RequestMode(ctx context.Context, sess *session.Session, mode string) (workflow.ModeTransition, error) {
	m, err := model.ParseScorecardMode(mode)
	if err != nil {
		return workflow.ModeUnchanged, err
	}
	tr, err := sess.Draft.RequestMode(m)
	return tr, c.saveAfter(ctx, sess, err)
}

func (c *controller) ConfirmMode(ctx context.Context, sess *session.Session) error {
	return c.saveAfter(ctx, sess, sess.Draft.ConfirmMode())
}

func (c *controller) DeclineMode(ctx context.Context, sess *session.Session) error {
	sess.Draft.DeclineMode()
	return c.save(ctx, sess)
}

func (c *controller) UpdateScores(ctx context.Context, sess *session.Session, scores map[string]string, caption string) ([]string, error) {
	if sess.Draft.Busy() {
		return nil, workflow.ErrBusy
	}

	var rejected []string
	for k, v := range scores {
		if !sess.Draft.SetScore(k, v) {
			rejected = append(rejected, k)
		}
	}
	sort.Strings(rejected)
	sess.Draft.SetCaption(caption)
	return rejected, c.save(ctx, sess)
}

func (c *controller) Autofill(ctx context.Context, sess *session.Session, target int) (int, error) {
	if target <= 0 {
		return 0, ErrInvalidTarget
	}
	partial, err := sess.Draft.PartialScorecard()
	if err != nil {
		return 0, err
	}

	filled, err := c.golf.AutofillScores(ctx, partial, target)
	if err != nil {
		c.logger.Warn("autofill failed", zap.Int("target", target), zap.Error(err))
		sess.Draft.Notice = AutofillFailedNotice
		return 0, c.saveAfter(ctx, sess, fmt.Errorf("error filling in scores: %w", err))
	}

	n := sess.Draft.ApplyFilledScores(filled)
	return n, c.save(ctx, sess)
}

// SubmitRound posts the round. Nothing is sent for an incomplete scorecard.
// Each draft is claimed in the session store before it is sent, so it is
// posted at most once however many submits race for it. Once posted, the
// user is reloaded so the new round and handicap show up.
func (c *controller) SubmitRound(ctx context.Context, sess *session.Session) error {
	if !sess.LoggedIn() {
		return ErrNotLoggedIn
	}

	req, err := sess.Draft.BeginSubmit(sess.User.ID)
	if errors.Is(err, workflow.ErrIncompleteScorecard) {
		metrics.RoundsSubmitted.WithLabelValues(metrics.ResultIncomplete).Inc()
		return c.saveAfter(ctx, sess, err)
	}
	if err != nil {
		return err
	}

	claim := submitClaim(sess.Draft)
	claimed, err := c.store.Claim(ctx, sess.ID, claim)
	if err != nil {
		sess.Draft.Status = workflow.StatusIdle
		return fmt.Errorf("error claiming round: %w", err)
	}
	if !claimed {
		return c.alreadySubmitted(ctx, sess)
	}

	logger := c.logger.With(zap.String("user_id", req.UserID), zap.String("course_id", req.CourseID))

	// Persist the posting status so other pages show the round as busy.
	if err := c.save(ctx, sess); err != nil {
		c.releaseClaim(ctx, sess.ID, claim, logger)
		return err
	}

	if err := c.golf.PostRound(ctx, req); err != nil {
		logger.Error("error posting round", zap.Error(err))
		metrics.RoundsSubmitted.WithLabelValues(metrics.ResultFailed).Inc()
		sess.Draft.FailSubmit()
		c.releaseClaim(ctx, sess.ID, claim, logger)
		if saveErr := c.saveDetached(ctx, sess); saveErr != nil {
			return saveErr
		}
		return fmt.Errorf("error posting round: %w", err)
	}

	metrics.RoundsSubmitted.WithLabelValues(metrics.ResultPosted).Inc()
	sess.Draft.CompleteSubmit(c.clock.Now(), c.postRedirect)
	logger.Info("round posted", zap.String("mode", string(req.Mode)), zap.Int("total", req.Scorecard.Total()))

	if u, err := c.golf.GetUser(ctx, req.UserID); err != nil {
		logger.Warn("error refreshing user after posting", zap.Error(err))
	} else {
		sess.User = u
	}
	return c.saveDetached(ctx, sess)
}

func submitClaim(d *workflow.Draft) string {
	return "submit:" + d.ID
}

// alreadySubmitted handles a submit that lost the claim on its draft to
// another one. The session is brought up to date with whatever was stored.
// A claim is released when posting fails, so unless the round is still
// being posted it has been posted.
func (c *controller) alreadySubmitted(ctx context.Context, sess *session.Session) error {
	c.logger.Info("round is already being submitted", zap.String("draft_id", sess.Draft.ID))
	metrics.RoundsSubmitted.WithLabelValues(metrics.ResultDuplicate).Inc()

	stored, err := c.store.Get(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("error reloading session: %w", err)
	}
	*sess = *stored
	if sess.Draft.Busy() {
		return workflow.ErrBusy
	}
	return workflow.ErrPosted
}

func (c *controller) releaseClaim(ctx context.Context, id, claim string, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), detachedSaveTimeout)
	defer cancel()
	if err := c.store.Release(ctx, id, claim); err != nil {
		logger.Error("error releasing round claim", zap.String("claim", claim), zap.Error(err))
	}
}

func (c *controller) RedirectCountdown(sess *session.Session) int {
	return sess.Draft.SecondsUntilRedirect(c.clock.Now())
}
