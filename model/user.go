package model

import (
	"fmt"
	"time"
)

// RoundsForHandicap is how many rounds must be posted before the backend
// starts reporting a handicap.
const RoundsForHandicap = 3

type User struct {
	ID           string
	Name         string
	Username     string
	Email        string
	RoundIDs     []string
	HandicapData []HandicapData
}

type HandicapData struct {
	Date     time.Time
	Handicap float64
}

// HandicapTrend summarizes a user's handicap history for display.
type HandicapTrend struct {
	Points []HandicapData
	// Rounds still needed before a handicap exists. Zero once it does.
	RoundsRemaining int
}

func NewHandicapTrend(u *User) HandicapTrend {
	t := HandicapTrend{Points: u.HandicapData}
	if len(u.HandicapData) == 0 {
		t.RoundsRemaining = max(RoundsForHandicap-len(u.RoundIDs), 0)
	}
	return t
}

func (t HandicapTrend) HasHandicap() bool {
	return len(t.Points) > 0
}

// Current is the most recent handicap, or 0 if there isn't one yet.
func (t HandicapTrend) Current() float64 {
	if len(t.Points) == 0 {
		return 0
	}
	return t.Points[len(t.Points)-1].Handicap
}

// Change is the difference between the two most recent handicaps. A negative
// change means the golfer is improving.
func (t HandicapTrend) Change() float64 {
	if len(t.Points) < 2 {
		return 0
	}
	n := len(t.Points)
	return t.Points[n-1].Handicap - t.Points[n-2].Handicap
}

func (t HandicapTrend) FormattedCurrent() string {
	return fmt.Sprintf("%.2f", t.Current())
}

func (t HandicapTrend) FormattedChange() string {
	return fmt.Sprintf("%+.2f", t.Change())
}
