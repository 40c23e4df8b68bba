package mockgolf

import (
	"context"

	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) SearchCourses(ctx context.Context, name string) ([]model.Course, error) {
	args := c.Called(ctx, name)

	var res []model.Course
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Course)
	}

	return res, args.Error(1)
}

func (c *Client) PostRound(ctx context.Context, r *model.RoundPost) error {
	args := c.Called(ctx, r)
	return args.Error(0)
}

func (c *Client) GetRounds(ctx context.Context, ids []string, withCourse bool, order golf.Order) ([]model.Round, error) {
	args := c.Called(ctx, ids, withCourse, order)

	var res []model.Round
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Round)
	}

	return res, args.Error(1)
}

func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := c.Called(ctx, id)

	var res *model.User
	if args.Get(0) != nil {
		res = args.Get(0).(*model.User)
	}

	return res, args.Error(1)
}

func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (*model.User, error) {
	args := c.Called(ctx, usernameOrEmail, password)

	var res *model.User
	if args.Get(0) != nil {
		res = args.Get(0).(*model.User)
	}

	return res, args.Error(1)
}

func (c *Client) Register(ctx context.Context, r *golf.Registration) (*model.User, error) {
	args := c.Called(ctx, r)

	var res *model.User
	if args.Get(0) != nil {
		res = args.Get(0).(*model.User)
	}

	return res, args.Error(1)
}

func (c *Client) UsernameTaken(ctx context.Context, username string) bool {
	args := c.Called(ctx, username)
	return args.Bool(0)
}

func (c *Client) EmailTaken(ctx context.Context, email string) bool {
	args := c.Called(ctx, email)
	return args.Bool(0)
}

func (c *Client) AutofillScores(ctx context.Context, partial map[int]model.PartialHole, targetTotal int) (model.Scorecard, error) {
	args := c.Called(ctx, partial, targetTotal)

	var res model.Scorecard
	if args.Get(0) != nil {
		res = args.Get(0).(model.Scorecard)
	}

	return res, args.Error(1)
}
