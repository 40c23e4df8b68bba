package golf

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maxmalik/FORE/model"
)

// Layouts the backend has been seen to use for dates. Dates read back from
// the database lose their time zone and are UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	time.DateOnly,
}

// apiTime is a date sent by the backend. Anything that can't be parsed is
// left as the zero time.
type apiTime struct {
	time.Time
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return nil
}

type course struct {
	ID           string   `json:"id"`
	MongoID      string   `json:"_id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	Zip          string   `json:"zip"`
	Phone        string   `json:"phone"`
	Website      string   `json:"website"`
	NumHoles     int      `json:"num_holes"`
	LengthFormat string   `json:"length_format"`
	Scorecard    []hole   `json:"scorecard"`
	TeeBoxes     []teeBox `json:"tee_boxes"`
}

type hole struct {
	Number   int                `json:"hole_number"`
	Par      int                `json:"par"`
	Handicap int                `json:"handicap"`
	Tees     map[string]holeTee `json:"tees"`
}

type holeTee struct {
	Color string `json:"color"`
	Yards int    `json:"yards"`
}

type teeBox struct {
	Tee        string  `json:"tee"`
	Slope      int     `json:"slope"`
	Handicap   float64 `json:"handicap"`
	TotalYards int     `json:"total_yards"`
}

func (c *course) toCourse() model.Course {
	id := c.ID
	if id == "" {
		id = c.MongoID
	}

	holes := make([]model.Hole, 0, len(c.Scorecard))
	for _, h := range c.Scorecard {
		tees := make(map[string]model.HoleTee, len(h.Tees))
		for k, t := range h.Tees {
			tees[k] = model.HoleTee{Color: t.Color, Yards: t.Yards}
		}
		holes = append(holes, model.Hole{
			Number:   h.Number,
			Par:      h.Par,
			Handicap: h.Handicap,
			Tees:     tees,
		})
	}
	sort.SliceStable(holes, func(i, j int) bool { return holes[i].Number < holes[j].Number })

	numHoles := c.NumHoles
	if numHoles == 0 {
		numHoles = len(holes)
	}

	teeBoxes := make([]model.TeeBox, 0, len(c.TeeBoxes))
	for _, t := range c.TeeBoxes {
		teeBoxes = append(teeBoxes, model.TeeBox{
			Name:         t.Tee,
			Slope:        t.Slope,
			CourseRating: t.Handicap,
			TotalYards:   t.TotalYards,
		})
	}

	format := model.LengthYards
	if strings.EqualFold(c.LengthFormat, model.LengthMeters) {
		format = model.LengthMeters
	}

	return model.Course{
		ID:           id,
		Name:         c.Name,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		Country:      c.Country,
		Zip:          c.Zip,
		Phone:        c.Phone,
		Website:      c.Website,
		NumHoles:     numHoles,
		LengthFormat: format,
		Holes:        holes,
		TeeBoxes:     teeBoxes,
	}
}

type round struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	CourseID          string         `json:"course_id"`
	TeeBoxIndex       *int           `json:"tee_box_index"`
	Caption           *string        `json:"caption"`
	Mode              string         `json:"scorecard_mode"`
	Scorecard         map[string]int `json:"scorecard"`
	ScoreDifferential float64        `json:"score_differential"`
	DatePosted        apiTime        `json:"date_posted"`
	Course            *course        `json:"course"`
}

func (r *round) toRound() model.Round {
	res := model.Round{
		ID:                r.ID,
		UserID:            r.UserID,
		CourseID:          r.CourseID,
		TeeBoxIndex:       model.NoTeeBox,
		Scorecard:         model.Scorecard(r.Scorecard),
		ScoreDifferential: r.ScoreDifferential,
		DatePosted:        r.DatePosted.Time,
	}
	if r.TeeBoxIndex != nil {
		res.TeeBoxIndex = *r.TeeBoxIndex
	}
	if r.Caption != nil {
		res.Caption = *r.Caption
	}

	mode, err := model.ParseScorecardMode(r.Mode)
	if err != nil {
		mode = model.ModeAllHoles
	}
	res.Mode = mode

	if r.Course != nil {
		c := r.Course.toCourse()
		res.Course = &c
	}
	return res
}

// roundPost is the body of POST /rounds/. The backend takes a missing tee box
// as null, it rejects negative indexes.
type roundPost struct {
	UserID      string         `json:"user_id"`
	CourseID    string         `json:"course_id"`
	TeeBoxIndex *int           `json:"tee_box_index"`
	Mode        string         `json:"scorecard_mode"`
	Scorecard   map[string]int `json:"scorecard"`
	Caption     string         `json:"caption,omitempty"`
}

func newRoundPost(r *model.RoundPost) *roundPost {
	p := &roundPost{
		UserID:    r.UserID,
		CourseID:  r.CourseID,
		Mode:      string(r.Mode),
		Scorecard: r.Scorecard,
		Caption:   strings.TrimSpace(r.Caption),
	}
	if r.TeeBoxIndex != model.NoTeeBox {
		i := r.TeeBoxIndex
		p.TeeBoxIndex = &i
	}
	return p
}

type user struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	Rounds       []string       `json:"rounds"`
	HandicapData []handicapData `json:"handicap_data"`
}

type handicapData struct {
	Date     apiTime `json:"date"`
	Handicap float64 `json:"handicap"`
}

func (u *user) toUser() *model.User {
	res := &model.User{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		RoundIDs:     u.Rounds,
		HandicapData: make([]model.HandicapData, 0, len(u.HandicapData)),
	}
	if res.RoundIDs == nil {
		res.RoundIDs = []string{}
	}
	for _, h := range u.HandicapData {
		res.HandicapData = append(res.HandicapData, model.HandicapData{Date: h.Date.Time, Handicap: h.Handicap})
	}
	return res
}

type autofillHole struct {
	Score *int `json:"score"`
	// nil when the course doesn't give a par for the hole.
	Par *int `json:"par"`
	// Fixed holes were entered by the golfer and must be kept.
	Fixed bool `json:"fixed"`
}

type autofillRequest struct {
	Scorecard   map[string]autofillHole `json:"scorecard"`
	TargetTotal int                     `json:"target_total"`
}

func newAutofillRequest(partial map[int]model.PartialHole, targetTotal int) *autofillRequest {
	req := &autofillRequest{
		Scorecard:   make(map[string]autofillHole, len(partial)),
		TargetTotal: targetTotal,
	}
	for n, h := range partial {
		var ah autofillHole
		if h.Par > 0 {
			par := h.Par
			ah.Par = &par
		}
		if h.Score > 0 {
			score := h.Score
			ah.Score = &score
			ah.Fixed = true
		}
		req.Scorecard[strconv.Itoa(n)] = ah
	}
	return req
}
