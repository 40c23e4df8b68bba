package model

import (
	"fmt"
	"strings"
)

// NoTeeBox is the tee box index recorded when the golfer chooses to post a
// round without one.
const NoTeeBox = -1

const (
	LengthYards  = "Y"
	LengthMeters = "M"
)

type Course struct {
	ID           string
	Name         string
	Address      string
	City         string
	State        string
	Country      string
	Zip          string
	Phone        string
	Website      string
	NumHoles     int
	LengthFormat string
	Holes        []Hole
	TeeBoxes     []TeeBox
}

type Hole struct {
	Number   int
	Par      int
	Handicap int
	// Yardages for each tee box, keyed by TeeBoxKey(index).
	Tees map[string]HoleTee
}

type HoleTee struct {
	Color string
	Yards int
}

type TeeBox struct {
	Name         string
	Slope        int
	CourseRating float64
	TotalYards   int
}

// TeeBoxKey returns the key used in Hole.Tees for the tee box at index i.
// Tee box 0 is "teeBox1", tee box 1 is "teeBox2", etc.
func TeeBoxKey(i int) string {
	return fmt.Sprintf("teeBox%d", i+1)
}

func (c *Course) HasTeeBoxes() bool {
	return len(c.TeeBoxes) > 0
}

// ValidTeeBoxIndex is true for NoTeeBox and for any index into TeeBoxes.
func (c *Course) ValidTeeBoxIndex(i int) bool {
	return i == NoTeeBox || (i >= 0 && i < len(c.TeeBoxes))
}

func (c *Course) TeeBox(i int) (TeeBox, bool) {
	if i < 0 || i >= len(c.TeeBoxes) {
		return TeeBox{}, false
	}
	return c.TeeBoxes[i], true
}

func (c *Course) Par() int {
	return sumPar(c.Holes)
}

func (c *Course) FrontPar() int {
	return sumPar(c.front())
}

func (c *Course) BackPar() int {
	return sumPar(c.back())
}

// HoleYards looks up the length of a hole from the given tee box. The second
// return value is false when no tee box is selected or the hole has no
// yardage recorded for it.
func (c *Course) HoleYards(h Hole, teeBox int) (int, bool) {
	if teeBox < 0 || h.Tees == nil {
		return 0, false
	}
	t, ok := h.Tees[TeeBoxKey(teeBox)]
	if !ok {
		return 0, false
	}
	return t.Yards, true
}

func (c *Course) FrontYards(teeBox int) (int, bool) {
	return c.sumYards(c.front(), teeBox)
}

func (c *Course) BackYards(teeBox int) (int, bool) {
	return c.sumYards(c.back(), teeBox)
}

func (c *Course) TotalYards(teeBox int) (int, bool) {
	t, ok := c.TeeBox(teeBox)
	if !ok {
		return 0, false
	}
	return t.TotalYards, true
}

// LengthUnit is the plural unit the course measures its holes in.
func (c *Course) LengthUnit() string {
	if c.LengthFormat == LengthYards {
		return "yards"
	}
	return "meters"
}

func (c *Course) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.City, c.State, c.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (c *Course) front() []Hole {
	if len(c.Holes) < 9 {
		return c.Holes
	}
	return c.Holes[:9]
}

func (c *Course) back() []Hole {
	if len(c.Holes) <= 9 {
		return nil
	}
	end := min(len(c.Holes), 18)
	return c.Holes[9:end]
}

func (c *Course) sumYards(holes []Hole, teeBox int) (int, bool) {
	if teeBox < 0 || len(holes) == 0 {
		return 0, false
	}
	total := 0
	for _, h := range holes {
		y, ok := c.HoleYards(h, teeBox)
		if !ok {
			return 0, false
		}
		total += y
	}
	return total, true
}

func sumPar(holes []Hole) int {
	total := 0
	for _, h := range holes {
		total += h.Par
	}
	return total
}
