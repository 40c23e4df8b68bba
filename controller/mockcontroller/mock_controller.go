package mockcontroller

import (
	"context"

	"github.com/maxmalik/FORE/controller"
	"github.com/maxmalik/FORE/session"
	"github.com/maxmalik/FORE/workflow"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) LoadSession(ctx context.Context, id string) (*session.Session, bool, error) {
	args := c.Called(ctx, id)

	var s *session.Session
	if args.Get(0) != nil {
		s = args.Get(0).(*session.Session)
	}

	return s, args.Bool(1), args.Error(2)
}

func (c *C) Logout(ctx context.Context, sess *session.Session) error {
	args := c.Called(ctx, sess)
	return args.Error(0)
}

func (c *C) Login(ctx context.Context, sess *session.Session, form controller.LoginForm) error {
	args := c.Called(ctx, sess, form)
	return args.Error(0)
}

func (c *C) Register(ctx context.Context, sess *session.Session, form controller.RegisterForm) error {
	args := c.Called(ctx, sess, form)
	return args.Error(0)
}

func (c *C) Dashboard(ctx context.Context, sess *session.Session) (*controller.Dashboard, error) {
	args := c.Called(ctx, sess)

	var d *controller.Dashboard
	if args.Get(0) != nil {
		d = args.Get(0).(*controller.Dashboard)
	}

	return d, args.Error(1)
}

func (c *C) SearchCourses(ctx context.Context, sess *session.Session, term string) error {
	args := c.Called(ctx, sess, term)
	return args.Error(0)
}

func (c *C) ShowResults(ctx context.Context, sess *session.Session) error {
	args := c.Called(ctx, sess)
	return args.Error(0)
}

func (c *C) HideResults(ctx context.Context, sess *session.Session) error {
	args := c.Called(ctx, sess)
	return args.Error(0)
}

func (c *C) SelectCourse(ctx context.Context, sess *session.Session, courseID string) error {
	args := c.Called(ctx, sess, courseID)
	return args.Error(0)
}

func (c *C) SelectTeeBox(ctx context.Context, sess *session.Session, index int) error {
	args := c.Called(ctx, sess, index)
	return args.Error(0)
}

func (c *C) ClearCourse(ctx context.Context, sess *session.Session) error {
	args := c.Called(ctx, sess)
	return args.Error(0)
}

func (c *C) RequestMode(ctx context.Context, sess *session.Session, mode string) (workflow.ModeTransition, error) {
	args := c.Called(ctx, sess, mode)
	return args.Get(0).(workflow.ModeTransition), args.Error(1)
}

func (c *C) ConfirmMode(ctx context.Context, sess *session.Session) error {
	args := c.Called(ctx, sess)
	return args.Error(0)
}

func (c *C) DeclineMode(ctx context.Context, sess *session.Session) error {
	args := c.Called(ctx, sess)
	return args.Error(0)
}

func (c *C) UpdateScores(ctx context.Context, sess *session.Session, scores map[string]string, caption string) ([]string, error) {
	args := c.Called(ctx, sess, scores, caption)

	var rejected []string
	if args.Get(0) != nil {
		rejected = args.Get(0).([]string)
	}

	return rejected, args.Error(1)
}

func (c *C) Autofill(ctx context.Context, sess *session.Session, target int) (int, error) {
	args := c.Called(ctx, sess, target)
	return args.Int(0), args.Error(1)
}

func (c *C) SubmitRound(ctx context.Context, sess *session.Session) error {
	args := c.Called(ctx, sess)
	return args.Error(0)
}

func (c *C) RedirectCountdown(sess *session.Session) int {
	args := c.Called(sess)
	return args.Int(0)
}
