package model

import (
	"sort"
	"strconv"
	"time"
)

// Scorecard is the final, numeric form of Scores that gets posted.
type Scorecard map[string]int

func (s Scorecard) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Round is a posted round as recorded by the backend. It is never changed
// once it has been created.
type Round struct {
	ID                string
	UserID            string
	CourseID          string
	TeeBoxIndex       int // NoTeeBox if none was used
	Caption           string
	Mode              ScorecardMode
	Scorecard         Scorecard
	ScoreDifferential float64
	DatePosted        time.Time
	Course            *Course // Only set when course data was requested
}

func (r *Round) Total() int {
	return r.Scorecard.Total()
}

// ScoreLine is one labelled score of a round, used to lay a round's scorecard
// out in the order it was played.
type ScoreLine struct {
	Label string
	Score int
}

func (r *Round) ScoreLines() []ScoreLine {
	switch r.Mode {
	case ModeFrontAndBack:
		return []ScoreLine{
			{Label: "OUT", Score: r.Scorecard[KeyFront]},
			{Label: "IN", Score: r.Scorecard[KeyBack]},
		}
	case ModeTotalScore:
		return []ScoreLine{{Label: "Total", Score: r.Scorecard[KeyTotal]}}
	}

	holes := make([]int, 0, len(r.Scorecard))
	for k := range r.Scorecard {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		holes = append(holes, n)
	}
	sort.Ints(holes)

	lines := make([]ScoreLine, 0, len(holes))
	for _, h := range holes {
		k := strconv.Itoa(h)
		lines = append(lines, ScoreLine{Label: k, Score: r.Scorecard[k]})
	}
	return lines
}

func (r *Round) FormattedDatePosted() string {
	if r.DatePosted.IsZero() {
		return "unknown"
	}
	return r.DatePosted.Format(time.DateOnly)
}

// RoundPost is everything needed to post a new round.
type RoundPost struct {
	UserID      string
	CourseID    string
	TeeBoxIndex int // NoTeeBox if none was used
	Caption     string
	Mode        ScorecardMode
	Scorecard   Scorecard
}
