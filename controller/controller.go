package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/session"
	"github.com/maxmalik/FORE/workflow"
	"go.uber.org/zap"
)

var ErrNotLoggedIn = errors.New("not logged in")

const detachedSaveTimeout = 5 * time.Second

// C encapsulates business logic without worrying about any web layers.
// Operations on a round in progress change sess.Draft and save the session
// before returning, even when they fail.
type C interface {
	// LoadSession returns the session with the given id, or a new empty one
	// if it doesn't exist. isNew is true for a new session.
	LoadSession(ctx context.Context, id string) (sess *session.Session, isNew bool, err error)
	Logout(ctx context.Context, sess *session.Session) error

	// Login and Register return a *FormError when the form is not valid, in
	// which case the backend is never called.
	Login(ctx context.Context, sess *session.Session, form LoginForm) error
	Register(ctx context.Context, sess *session.Session, form RegisterForm) error

	Dashboard(ctx context.Context, sess *session.Session) (*Dashboard, error)

	SearchCourses(ctx context.Context, sess *session.Session, term string) error
	ShowResults(ctx context.Context, sess *session.Session) error
	HideResults(ctx context.Context, sess *session.Session) error
	SelectCourse(ctx context.Context, sess *session.Session, courseID string) error
	// SelectTeeBox records the tee box, model.NoTeeBox skips it.
	SelectTeeBox(ctx context.Context, sess *session.Session, index int) error
	ClearCourse(ctx context.Context, sess *session.Session) error
	RequestMode(ctx context.Context, sess *session.Session, mode string) (workflow.ModeTransition, error)
	ConfirmMode(ctx context.Context, sess *session.Session) error
	DeclineMode(ctx context.Context, sess *session.Session) error
	// UpdateScores applies the entered scores and caption. It returns the keys
	// whose input was not accepted.
	UpdateScores(ctx context.Context, sess *session.Session, scores map[string]string, caption string) ([]string, error)
	// Autofill fills blank holes so the round adds up to target. It returns
	// how many holes were filled.
	Autofill(ctx context.Context, sess *session.Session, target int) (int, error)
	SubmitRound(ctx context.Context, sess *session.Session) error
	// RedirectCountdown is how many seconds are left before a posted round
	// moves on to the dashboard.
	RedirectCountdown(sess *session.Session) int
}

type controller struct {
	clock        clock.Clock
	golf         golf.Client
	store        session.Store
	logger       *zap.Logger
	postRedirect time.Duration
}

func New(clock clock.Clock, golf golf.Client, store session.Store, logger *zap.Logger, postRedirect time.Duration) (C, error) {
	if golf == nil || store == nil {
		return nil, errors.New("a golf client and session store are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &controller{
		clock:        clock,
		golf:         golf,
		store:        store,
		logger:       logger,
		postRedirect: postRedirect,
	}
	return c, nil
}

func (c *controller) LoadSession(ctx context.Context, id string) (*session.Session, bool, error) {
	if id != "" {
		sess, err := c.store.Get(ctx, id)
		if err == nil {
			return sess, false, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			// A session that can't be read is replaced rather than locking the
			// visitor out.
			c.logger.Warn("error loading session, starting a new one", zap.String("session_id", id), zap.Error(err))
		}
	}

	sess := session.New(c.clock.Now().UTC())
	if err := c.save(ctx, sess); err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

func (c *controller) Logout(ctx context.Context, sess *session.Session) error {
	if err := c.store.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("error logging out: %w", err)
	}
	sess.User = nil
	sess.Draft = workflow.New()
	return nil
}

func (c *controller) save(ctx context.Context, sess *session.Session) error {
	return c.store.Save(ctx, sess)
}

// saveDetached saves the session even when the request is gone, for state
// that must not be left half done.
func (c *controller) saveDetached(ctx context.Context, sess *session.Session) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), detachedSaveTimeout)
	defer cancel()
	return c.save(ctx, sess)
}

// saveAfter saves the session and returns opErr, unless saving failed.
func (c *controller) saveAfter(ctx context.Context, sess *session.Session, opErr error) error {
	if err := c.save(ctx, sess); err != nil {
		return err
	}
	return opErr
}
