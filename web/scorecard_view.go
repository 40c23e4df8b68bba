package web

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/maxmalik/FORE/model"
	"github.com/maxmalik/FORE/workflow"
)

// yardsPlaceholder stands in for a length that isn't known, e.g. when the
// round is posted without a tee box.
const yardsPlaceholder = "-"

type postRoundPage struct {
	User      *model.User
	Draft     *workflow.Draft
	Countdown int
	Modes     []modeOption
	TeeBoxes  []teeBoxOption
	Scorecard *scorecardView
}

type modeOption struct {
	Value    string
	Label    string
	Selected bool
}

type teeBoxOption struct {
	Index  int
	Name   string
	Length string
	Rating string
}

// scorecardView lays the scorecard out as a table with one column per hole
// or per score, plus sum columns.
type scorecardView struct {
	Unit    string
	TeeBox  string
	Columns []scorecardColumn
	Total   int
	// Handicaps and autofill only apply when scoring hole by hole.
	HoleByHole bool
}

type scorecardColumn struct {
	Label    string
	Yards    string
	Par      int
	Handicap string
	// Key of the score input, empty for sum columns.
	Key   string
	Score string
}

func newPostRoundPage(user *model.User, d *workflow.Draft, countdown int) *postRoundPage {
	p := &postRoundPage{
		User:      user,
		Draft:     d,
		Countdown: countdown,
	}
	if d.Course == nil {
		return p
	}

	for _, m := range d.AvailableModes() {
		p.Modes = append(p.Modes, modeOption{Value: string(m), Label: m.Label(), Selected: m == d.Mode})
	}

	if d.SelectingTeeBox() {
		for i, t := range d.Course.TeeBoxes {
			p.TeeBoxes = append(p.TeeBoxes, teeBoxOption{
				Index:  i,
				Name:   t.Name,
				Length: lengthFormatter(d.Course, i),
				Rating: strconv.FormatFloat(t.CourseRating, 'f', 1, 64) + " / " + strconv.Itoa(t.Slope),
			})
		}
		return p
	}

	if d.Scores != nil {
		p.Scorecard = newScorecardView(d)
	}
	return p
}

func newScorecardView(d *workflow.Draft) *scorecardView {
	c := d.Course
	tee := d.TeeBox()

	v := &scorecardView{
		Unit:       c.LengthUnit(),
		Total:      d.Total(),
		HoleByHole: d.Mode == model.ModeAllHoles,
	}
	if t, ok := c.TeeBox(tee); ok {
		v.TeeBox = t.Name
	}

	front := sumColumn("OUT", c.FrontYards, c.FrontPar(), tee)
	back := sumColumn("IN", c.BackYards, c.BackPar(), tee)
	total := sumColumn("TOT", c.TotalYards, c.Par(), tee)

	switch d.Mode {
	case model.ModeFrontAndBack:
		front.Key, front.Score = model.KeyFront, d.Scores[model.KeyFront]
		back.Key, back.Score = model.KeyBack, d.Scores[model.KeyBack]
		total.Score = scoreSum(d.Scores, model.KeyFront, model.KeyBack)
		v.Columns = []scorecardColumn{front, back, total}

	case model.ModeTotalScore:
		total.Key, total.Score = model.KeyTotal, d.Scores[model.KeyTotal]
		v.Columns = []scorecardColumn{total}

	default:
		holes := make(map[int]model.Hole, len(c.Holes))
		for _, h := range c.Holes {
			holes[h.Number] = h
		}

		keys := d.ScoreKeys()
		for i, k := range keys {
			n, _ := strconv.Atoi(k)
			v.Columns = append(v.Columns, holeColumn(c, holes[n], n, tee, k, d.Scores[k]))

			if c.NumHoles == 18 && i == 8 {
				front.Score = scoreSum(d.Scores, keys[:9]...)
				v.Columns = append(v.Columns, front)
			}
		}
		if c.NumHoles == 18 {
			back.Score = scoreSum(d.Scores, keys[9:]...)
			v.Columns = append(v.Columns, back)
		}
		total.Score = scoreSum(d.Scores, keys...)
		v.Columns = append(v.Columns, total)
	}
	return v
}

func holeColumn(c *model.Course, h model.Hole, n, tee int, key, score string) scorecardColumn {
	col := scorecardColumn{
		Label:    strconv.Itoa(n),
		Yards:    yardsPlaceholder,
		Par:      h.Par,
		Handicap: yardsPlaceholder,
		Key:      key,
		Score:    score,
	}
	if y, ok := c.HoleYards(h, tee); ok {
		col.Yards = humanize.Comma(int64(y))
	}
	if h.Handicap > 0 {
		col.Handicap = strconv.Itoa(h.Handicap)
	}
	return col
}

func sumColumn(label string, yards func(int) (int, bool), par, tee int) scorecardColumn {
	col := scorecardColumn{
		Label: label,
		Yards: yardsPlaceholder,
		Par:   par,
	}
	if y, ok := yards(tee); ok {
		col.Yards = humanize.Comma(int64(y))
	}
	return col
}

// scoreSum adds up the given scores for a sum column. Blank when nothing has
// been entered yet.
func scoreSum(scores model.Scores, keys ...string) string {
	sub := make(model.Scores, len(keys))
	for _, k := range keys {
		sub[k] = scores[k]
	}
	if sub.Empty() {
		return ""
	}
	return strconv.Itoa(sub.Total())
}
