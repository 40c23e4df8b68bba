package workflow

import (
	"strings"
	"time"

	"github.com/maxmalik/FORE/model"
)

// Posted records when a successfully posted round redirects to the dashboard.
type Posted struct {
	RedirectAt time.Time
}

// BeginSubmit checks the round is ready to post and builds the request for
// it. While the request is outstanding the draft is busy. If any score is
// still blank no request should be sent: a warning is set and
// ErrIncompleteScorecard returned.
func (d *Draft) BeginSubmit(userID string) (*model.RoundPost, error) {
	if d.Busy() {
		return nil, ErrBusy
	}
	if d.Status == StatusPostComplete {
		return nil, ErrPosted
	}
	if d.Course == nil {
		return nil, ErrNoCourse
	}
	if d.TeeBoxIndex == nil {
		return nil, ErrNoTeeBox
	}
	if !d.Scores.HasKeys(model.ScoreKeys(d.Mode, d.Course.NumHoles)) {
		return nil, ErrScorecardMismatch
	}

	d.ClearMessages()
	d.Status = StatusPosting

	if len(d.Scores.Missing()) > 0 {
		d.Warning = IncompleteScorecardWarning
		d.Status = StatusIdle
		return nil, ErrIncompleteScorecard
	}

	scorecard, err := d.Scores.Finalize()
	if err != nil {
		d.Status = StatusIdle
		return nil, err
	}

	return &model.RoundPost{
		UserID:      userID,
		CourseID:    d.Course.ID,
		TeeBoxIndex: *d.TeeBoxIndex,
		Caption:     strings.TrimSpace(d.Caption),
		Mode:        d.Mode,
		Scorecard:   scorecard,
	}, nil
}

// CompleteSubmit marks the round as posted. The page redirects once countdown
// has passed.
func (d *Draft) CompleteSubmit(now time.Time, countdown time.Duration) {
	d.Status = StatusPostComplete
	d.PostedRound = &Posted{RedirectAt: now.Add(countdown)}
}

// FailSubmit returns to idle after the backend rejected the round. The scores
// are kept so the round can be posted again as is.
func (d *Draft) FailSubmit() {
	d.Status = StatusIdle
	d.Notice = PostFailedNotice
}

// SecondsUntilRedirect is the countdown shown after posting. Zero means the
// redirect is due.
func (d *Draft) SecondsUntilRedirect(now time.Time) int {
	if d.PostedRound == nil {
		return 0
	}
	left := d.PostedRound.RedirectAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}
