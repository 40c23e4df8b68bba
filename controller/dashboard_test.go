package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/golf/mockgolf"
	"github.com/maxmalik/FORE/model"
	"github.com/maxmalik/FORE/testutils"
	"github.com/maxmalik/FORE/workflow"
	"github.com/stretchr/testify/mock"
)

func TestDashboard(t *testing.T) {
	tc := newTestController(t, nil)
	ctx := context.Background()
	sess := tc.loggedIn(t)

	d, err := tc.Dashboard(ctx, sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.User.ID != testutils.UserID {
		t.Errorf("expected user %s, got %s", testutils.UserID, d.User.ID)
	}
	if d.Trend.FormattedCurrent() != "16.90" || d.Trend.FormattedChange() != "-0.50" {
		t.Errorf("unexpected trend: %s %s", d.Trend.FormattedCurrent(), d.Trend.FormattedChange())
	}

	expectedIDs := []string{"6650c3f3e4dac3f2a6b00003", "6650c3f3e4dac3f2a6b00002", "6650c3f3e4dac3f2a6b00001"}
	if len(d.Rounds) != len(expectedIDs) {
		t.Fatalf("expected %d rounds, got %d", len(expectedIDs), len(d.Rounds))
	}
	for i, r := range d.Rounds {
		if r.ID != expectedIDs[i] {
			t.Errorf("round %d: expected %s, got %s", i, expectedIDs[i], r.ID)
		}
		if r.Course == nil {
			t.Errorf("round %s is missing its course", r.ID)
		}
	}
}

func TestDashboard_noRounds(t *testing.T) {
	client := &mockgolf.Client{}
	tc := newTestController(t, client)
	ctx := context.Background()

	fresh := &model.User{ID: "u1", Username: "newbie", RoundIDs: []string{}}
	client.On("GetUser", mock.Anything, "u1").Return(fresh, nil)

	sess, _, _ := tc.LoadSession(ctx, "")
	sess.User = fresh

	d, err := tc.Dashboard(ctx, sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Rounds) != 0 || d.Rounds == nil {
		t.Errorf("expected an empty list of rounds, got %v", d.Rounds)
	}
	if d.Trend.RoundsRemaining != model.RoundsForHandicap {
		t.Errorf("expected %d rounds remaining, got %d", model.RoundsForHandicap, d.Trend.RoundsRemaining)
	}
	client.AssertNotCalled(t, "GetRounds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboard_resetsPostedRound(t *testing.T) {
	tc := newTestController(t, nil)
	ctx := context.Background()
	sess := tc.loggedIn(t)
	sess.Draft.SelectCourse(model.Course{ID: testutils.NineHoleID, NumHoles: 9})
	sess.Draft.Status = workflow.StatusPostComplete

	if _, err := tc.Dashboard(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := tc.store.Get(ctx, sess.ID)
	if stored.Draft.Course != nil || stored.Draft.Status != workflow.StatusIdle {
		t.Errorf("the posted round should be cleared: %+v", stored.Draft)
	}
}

func TestDashboard_errors(t *testing.T) {
	client := &mockgolf.Client{}
	tc := newTestController(t, client)
	ctx := context.Background()

	u := &model.User{ID: "u1", RoundIDs: []string{"r1"}}
	client.On("GetUser", mock.Anything, "missing").Return(nil, &golf.APIError{Status: 404, Detail: "User not found"})
	client.On("GetUser", mock.Anything, "u1").Return(u, nil)
	client.On("GetRounds", mock.Anything, []string{"r1"}, true, golf.OrderDesc).Return(nil, errors.New("connection refused"))

	sess, _, _ := tc.LoadSession(ctx, "")
	if _, err := tc.Dashboard(ctx, sess); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}

	sess.User = &model.User{ID: "missing"}
	if _, err := tc.Dashboard(ctx, sess); golf.StatusOf(err) != 404 {
		t.Errorf("expected a 404, got %v", err)
	}

	sess.User = u
	if _, err := tc.Dashboard(ctx, sess); err == nil {
		t.Errorf("expected an error loading rounds")
	}
}
