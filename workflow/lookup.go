package workflow

import (
	"strings"

	"github.com/google/uuid"
	"github.com/maxmalik/FORE/model"
)

// BeginSearch starts a course search for term. A blank term clears any
// previous results and returns ok == false, nothing should be searched for.
// Otherwise the returned token must be handed back to ApplySearchResults or
// FailSearch.
func (d *Draft) BeginSearch(term string) (token string, ok bool) {
	d.SearchTerm = term
	if strings.TrimSpace(term) == "" {
		d.Results = nil
		d.ResultsVisible = false
		d.SearchGeneration = ""
		if d.Status == StatusLoadingResults {
			d.Status = StatusIdle
		}
		return "", false
	}

	d.SearchGeneration = uuid.NewString()
	d.Notice = ""
	if !d.Busy() {
		d.Status = StatusLoadingResults
	}
	return d.SearchGeneration, true
}

// ApplySearchResults stores the results of the search identified by token.
// If a newer search has been started since, the results are stale and are
// dropped; the return value reports whether they were used.
func (d *Draft) ApplySearchResults(token string, results []model.Course) bool {
	if token == "" || token != d.SearchGeneration {
		return false
	}
	if results == nil {
		results = []model.Course{}
	}

	d.Results = results
	d.SubmittedSearchTerm = d.SearchTerm
	d.ResultsVisible = true
	d.SearchGeneration = ""
	if d.Status == StatusLoadingResults {
		d.Status = StatusIdle
	}
	return true
}

// FailSearch ends the search identified by token without results.
func (d *Draft) FailSearch(token string) bool {
	if token == "" || token != d.SearchGeneration {
		return false
	}
	d.SearchGeneration = ""
	if d.Status == StatusLoadingResults {
		d.Status = StatusIdle
	}
	return true
}

func (d *Draft) ShowResults() {
	d.ResultsVisible = d.Results != nil
}

func (d *Draft) HideResults() {
	d.ResultsVisible = false
}

// SelectCourse picks one of the search results. If the course has tee boxes
// the golfer is asked for one next, otherwise the scorecard is ready to be
// filled in straight away without a tee box.
func (d *Draft) SelectCourse(c model.Course) error {
	if d.Busy() {
		return ErrBusy
	}

	d.Course = &c
	d.SearchTerm = ""
	d.ResultsVisible = false
	// A search still running can't bring the results back over the scorecard.
	d.SearchGeneration = ""
	if d.Status == StatusLoadingResults {
		d.Status = StatusIdle
	}
	d.PendingMode = ""
	d.PostedRound = nil
	d.ClearMessages()
	if !model.ModeAvailable(d.Mode, c.NumHoles) {
		d.Mode = model.ModeAllHoles
	}

	if c.HasTeeBoxes() {
		d.TeeBoxIndex = nil
		d.Scores = nil
		return nil
	}

	none := model.NoTeeBox
	d.TeeBoxIndex = &none
	d.Scores = model.NewScores(d.Mode, c.NumHoles)
	return nil
}

// SelectResult selects the course with the given id out of the current
// results.
func (d *Draft) SelectResult(courseID string) error {
	for _, c := range d.Results {
		if c.ID == courseID {
			return d.SelectCourse(c)
		}
	}
	return ErrNoCourse
}
