package workflow

import (
	"github.com/maxmalik/FORE/model"
)

// SelectingTeeBox is true while the golfer still has to pick a tee box for
// the selected course.
func (d *Draft) SelectingTeeBox() bool {
	return d.Course != nil && d.TeeBoxIndex == nil
}

// TeeBox returns the chosen tee box index, model.NoTeeBox if none was chosen
// or it was skipped.
func (d *Draft) TeeBox() int {
	if d.TeeBoxIndex == nil {
		return model.NoTeeBox
	}
	return *d.TeeBoxIndex
}

// SelectTeeBox records the tee box the round was played from. The choice can
// only be made once per course; clearing the course is the only way to make
// it again.
func (d *Draft) SelectTeeBox(i int) error {
	if d.Busy() {
		return ErrBusy
	}
	if d.Course == nil {
		return ErrNoCourse
	}
	if d.TeeBoxIndex != nil {
		return ErrTeeBoxChosen
	}
	if !d.Course.ValidTeeBoxIndex(i) {
		return ErrInvalidTeeBox
	}

	d.TeeBoxIndex = &i
	d.Scores = model.NewScores(d.Mode, d.Course.NumHoles)
	return nil
}

func (d *Draft) SkipTeeBox() error {
	return d.SelectTeeBox(model.NoTeeBox)
}
