package workflow

import (
	"strconv"

	"github.com/maxmalik/FORE/model"
)

// ModeTransition describes what happened to a requested mode change.
type ModeTransition int

const (
	ModeUnchanged ModeTransition = iota
	ModeChanged
	// The change waits for ConfirmMode or DeclineMode because it would throw
	// away scores that were already entered.
	ModePending
)

func (d *Draft) AvailableModes() []model.ScorecardMode {
	if d.Course == nil {
		return nil
	}
	return model.AvailableModes(d.Course.NumHoles)
}

// ScoreKeys returns the keys of the scorecard in display order.
func (d *Draft) ScoreKeys() []string {
	if d.Course == nil {
		return nil
	}
	return model.ScoreKeys(d.Mode, d.Course.NumHoles)
}

func (d *Draft) Total() int {
	return d.Scores.Total()
}

// RequestMode asks to switch the scorecard to mode m.
func (d *Draft) RequestMode(m model.ScorecardMode) (ModeTransition, error) {
	if d.Busy() {
		return ModeUnchanged, ErrBusy
	}
	if d.Course == nil {
		return ModeUnchanged, ErrNoCourse
	}
	if _, err := model.ParseScorecardMode(string(m)); err != nil {
		return ModeUnchanged, err
	}
	if !model.ModeAvailable(m, d.Course.NumHoles) {
		return ModeUnchanged, ErrModeUnavailable
	}
	if m == d.Mode {
		return ModeUnchanged, nil
	}

	if d.Scores.Empty() {
		d.setMode(m)
		return ModeChanged, nil
	}

	d.PendingMode = m
	return ModePending, nil
}

// ConfirmMode accepts the pending mode change, discarding every score.
func (d *Draft) ConfirmMode() error {
	if d.Busy() {
		return ErrBusy
	}
	if d.PendingMode == "" {
		return ErrNoPendingMode
	}
	if d.Course == nil {
		d.PendingMode = ""
		return ErrNoCourse
	}
	d.setMode(d.PendingMode)
	return nil
}

// DeclineMode cancels the pending mode change and leaves everything as it was.
func (d *Draft) DeclineMode() {
	d.PendingMode = ""
}

func (d *Draft) setMode(m model.ScorecardMode) {
	d.Mode = m
	d.PendingMode = ""
	if d.TeeBoxIndex != nil {
		d.Scores = model.NewScores(m, d.Course.NumHoles)
	}
}

// SetScore updates the score for key. Input that can't be a score for the
// current mode is ignored and the previous value kept; the return value
// reports whether the input was taken.
func (d *Draft) SetScore(key, value string) bool {
	if d.Busy() || d.Scores == nil {
		return false
	}
	if _, ok := d.Scores[key]; !ok {
		return false
	}
	if !model.ValidScoreInput(d.Mode, value) {
		return false
	}
	d.Scores[key] = value
	return true
}

func (d *Draft) SetCaption(caption string) {
	if d.Busy() {
		return
	}
	d.Caption = caption
}

// PartialScorecard describes the scorecard as it stands so the empty holes
// can be filled in to reach a target total. Only available hole by hole.
func (d *Draft) PartialScorecard() (map[int]model.PartialHole, error) {
	if d.Course == nil {
		return nil, ErrNoCourse
	}
	if d.Scores == nil {
		return nil, ErrNoTeeBox
	}
	if d.Mode != model.ModeAllHoles {
		return nil, ErrNotAllHoles
	}

	pars := make(map[int]int, len(d.Course.Holes))
	for _, h := range d.Course.Holes {
		pars[h.Number] = h.Par
	}

	res := make(map[int]model.PartialHole, len(d.Scores))
	for k, v := range d.Scores {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, ErrScorecardMismatch
		}
		score, _ := strconv.Atoi(v)
		res[n] = model.PartialHole{Score: score, Par: pars[n]}
	}
	return res, nil
}

// ApplyFilledScores copies filled in scores into holes that are still blank.
// Holes the golfer already entered are never overwritten. Returns how many
// holes were filled.
func (d *Draft) ApplyFilledScores(filled model.Scorecard) int {
	if d.Busy() || d.Scores == nil || d.Mode != model.ModeAllHoles {
		return 0
	}
	count := 0
	for k, v := range filled {
		cur, ok := d.Scores[k]
		if !ok || cur != "" {
			continue
		}
		s := strconv.Itoa(v)
		if !model.ValidScoreInput(d.Mode, s) {
			continue
		}
		d.Scores[k] = s
		count++
	}
	return count
}
