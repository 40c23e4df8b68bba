package controller

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/session"
	"github.com/maxmalik/FORE/testutils"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// A global fake backend to use for all of the tests instead of starting a new one each time.
var fakeGolf *testutils.FakeGolfServer

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	fakeGolf = testutils.NewFakeGolfServer()
	code := m.Run()
	fakeGolf.Close()
	os.Exit(code)
}

type testController struct {
	*controller
	clock *clock.Mock
	store *session.MemoryStore
}

func newTestController(t *testing.T, client golf.Client) *testController {
	t.Helper()
	if client == nil {
		client = golf.NewForTest(fakeGolf.URL())
	}

	clk := clock.NewMock()
	clk.Set(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	logger := zaptest.NewLogger(t)
	store := session.NewMemoryStore(time.Hour, clk, zap.NewNop())

	c, err := New(clk, client, store, logger, 5*time.Second)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return &testController{
		controller: c.(*controller),
		clock:      clk,
		store:      store,
	}
}

// loggedIn returns a saved session for the fixture user.
func (tc *testController) loggedIn(t *testing.T) *session.Session {
	t.Helper()
	sess, _, err := tc.LoadSession(context.Background(), "")
	if err != nil {
		t.Fatalf("error creating session: %v", err)
	}
	err = tc.Login(context.Background(), sess, LoginForm{UsernameOrEmail: testutils.Username, Password: testutils.UserPassword})
	if err != nil {
		t.Fatalf("error logging in: %v", err)
	}
	return sess
}

func TestNew_requiresDependencies(t *testing.T) {
	if _, err := New(clock.New(), nil, nil, nil, time.Second); err == nil {
		t.Errorf("expected an error without a client and store")
	}
}

func TestLoadSession(t *testing.T) {
	tc := newTestController(t, nil)
	ctx := context.Background()

	sess, isNew, err := tc.LoadSession(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isNew || sess.ID == "" || sess.LoggedIn() {
		t.Errorf("expected a new, empty session: %+v", sess)
	}
	if !sess.CreatedAt.Equal(tc.clock.Now()) {
		t.Errorf("expected created at %v, got %v", tc.clock.Now(), sess.CreatedAt)
	}

	again, isNew, err := tc.LoadSession(ctx, sess.ID)
	if err != nil || isNew || again.ID != sess.ID {
		t.Errorf("expected the existing session back, got %v %v %v", again, isNew, err)
	}

	other, isNew, err := tc.LoadSession(ctx, "unknown")
	if err != nil || !isNew || other.ID == "unknown" {
		t.Errorf("an unknown id should give a new session, got %v %v %v", other, isNew, err)
	}
}

func TestLogout(t *testing.T) {
	tc := newTestController(t, nil)
	ctx := context.Background()
	sess := tc.loggedIn(t)

	if err := tc.Logout(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.LoggedIn() {
		t.Errorf("user should be removed from the session")
	}
	if _, err := tc.store.Get(ctx, sess.ID); err != session.ErrNotFound {
		t.Errorf("session should be deleted, got %v", err)
	}
}
