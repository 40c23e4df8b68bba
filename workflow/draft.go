// Package workflow holds the state of a round while it is being composed:
// finding a course, picking a tee box, filling in the scorecard and posting
// it. A Draft has no I/O of its own, the controller feeds it the results of
// backend calls. Every field is exported so a Draft can be stored in a
// session between requests.
package workflow

import (
	"errors"

	"github.com/google/uuid"
	"github.com/maxmalik/FORE/model"
)

type Status string

const (
	StatusIdle           Status = "idle"
	StatusLoadingResults Status = "loading-results"
	StatusPosting        Status = "posting"
	StatusPostComplete   Status = "post-complete"
)

const (
	IncompleteScorecardWarning = "Please complete the scorecard before posting."
	PostFailedNotice           = "Something went wrong posting your round. Please try again later."
)

var (
	ErrBusy                = errors.New("a round is already being posted")
	ErrPosted              = errors.New("the round has already been posted")
	ErrNoCourse            = errors.New("no course selected")
	ErrNoTeeBox            = errors.New("no tee box selected")
	ErrTeeBoxChosen        = errors.New("a tee box has already been chosen")
	ErrInvalidTeeBox       = errors.New("tee box index out of range")
	ErrModeUnavailable     = errors.New("scorecard mode not available for this course")
	ErrNoPendingMode       = errors.New("no scorecard mode change is pending")
	ErrScorecardMismatch   = errors.New("scorecard does not match the scorecard mode")
	ErrIncompleteScorecard = errors.New("scorecard is incomplete")
	ErrNotAllHoles         = errors.New("scores can only be filled in hole by hole")
)

type Draft struct {
	// ID identifies this round until it is posted or thrown away. A round is
	// posted at most once per ID.
	ID string

	SearchTerm          string
	SubmittedSearchTerm string
	// Token of the most recent search. Results are only accepted for it.
	SearchGeneration string
	// nil until a search has completed.
	Results        []model.Course
	ResultsVisible bool

	Course *model.Course
	// nil until a tee box has been chosen, model.NoTeeBox when skipped.
	TeeBoxIndex *int

	Mode        model.ScorecardMode
	PendingMode model.ScorecardMode
	Scores      model.Scores
	Caption     string

	Status Status
	// Warning is shown above the scorecard, e.g. when trying to post an
	// incomplete one.
	Warning string
	// Notice reports a failed backend call.
	Notice string
	// PostedRound counts down to a redirect once the round is posted.
	PostedRound *Posted
}

func New() *Draft {
	return &Draft{
		ID:     uuid.NewString(),
		Mode:   model.ModeAllHoles,
		Status: StatusIdle,
	}
}

// Normalize repairs a draft loaded from storage so the zero value behaves
// like New().
func (d *Draft) Normalize() {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Mode == "" {
		d.Mode = model.ModeAllHoles
	}
	if d.Status == "" {
		d.Status = StatusIdle
	}
}

func (d *Draft) Busy() bool {
	return d.Status == StatusPosting
}

// ClearCourse throws away everything chosen so far, no matter how far along
// the round is, and starts over with an empty search.
func (d *Draft) ClearCourse() error {
	if d.Busy() {
		return ErrBusy
	}
	*d = *New()
	return nil
}

// ClearMessages drops the warning and notice once they have been shown.
func (d *Draft) ClearMessages() {
	d.Warning = ""
	d.Notice = ""
}
