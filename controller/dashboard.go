package controller

import (
	"context"
	"fmt"

	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/model"
	"github.com/maxmalik/FORE/session"
	"github.com/maxmalik/FORE/workflow"
	"go.uber.org/zap"
)

type Dashboard struct {
	User  *model.User
	Trend model.HandicapTrend
	// Newest first, each with its course.
	Rounds []model.Round
}

// Dashboard reloads the user and their rounds. A round that has just been
// posted is finished with once the dashboard is shown.
func (c *controller) Dashboard(ctx context.Context, sess *session.Session) (*Dashboard, error) {
	if !sess.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	u, err := c.golf.GetUser(ctx, sess.User.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading user %s: %w", sess.User.ID, err)
	}
	sess.User = u
	if sess.Draft.Status == workflow.StatusPostComplete {
		sess.Draft = workflow.New()
	}
	if err := c.save(ctx, sess); err != nil {
		return nil, err
	}

	d := &Dashboard{
		User:   u,
		Trend:  model.NewHandicapTrend(u),
		Rounds: []model.Round{},
	}
	if len(u.RoundIDs) == 0 {
		return d, nil
	}

	rounds, err := c.golf.GetRounds(ctx, u.RoundIDs, true, golf.OrderDesc)
	if err != nil {
		c.logger.Warn("error loading rounds", zap.String("user_id", u.ID), zap.Error(err))
		return nil, fmt.Errorf("error loading rounds: %w", err)
	}
	d.Rounds = rounds
	return d, nil
}
