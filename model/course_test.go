package model

import "testing"

func testCourse(numHoles, teeBoxes int) *Course {
	c := &Course{
		ID:           "c1",
		Name:         "Test Links",
		City:         "Pebble Beach",
		State:        "CA",
		Country:      "USA",
		NumHoles:     numHoles,
		LengthFormat: LengthYards,
	}
	for i := 0; i < teeBoxes; i++ {
		c.TeeBoxes = append(c.TeeBoxes, TeeBox{Name: TeeBoxKey(i), Slope: 113, CourseRating: 72, TotalYards: numHoles * (300 + i*10)})
	}
	for n := 1; n <= numHoles; n++ {
		h := Hole{Number: n, Par: 4, Handicap: n, Tees: map[string]HoleTee{}}
		for i := 0; i < teeBoxes; i++ {
			h.Tees[TeeBoxKey(i)] = HoleTee{Color: "white", Yards: 300 + i*10}
		}
		c.Holes = append(c.Holes, h)
	}
	return c
}

func TestCoursePar(t *testing.T) {
	c := testCourse(18, 2)
	c.Holes[0].Par = 5
	c.Holes[17].Par = 3

	if c.Par() != 72 {
		t.Errorf("expected par 72, got %d", c.Par())
	}
	if c.FrontPar() != 37 {
		t.Errorf("expected front par 37, got %d", c.FrontPar())
	}
	if c.BackPar() != 35 {
		t.Errorf("expected back par 35, got %d", c.BackPar())
	}

	nine := testCourse(9, 1)
	if nine.BackPar() != 0 {
		t.Errorf("nine hole course should not have a back nine, got %d", nine.BackPar())
	}
}

func TestCourseYards(t *testing.T) {
	c := testCourse(18, 2)

	if y, ok := c.HoleYards(c.Holes[0], 1); !ok || y != 310 {
		t.Errorf("expected 310 yards from the second tee, got %d (%v)", y, ok)
	}
	if _, ok := c.HoleYards(c.Holes[0], NoTeeBox); ok {
		t.Errorf("expected no yardage without a tee box")
	}
	if _, ok := c.HoleYards(c.Holes[0], 5); ok {
		t.Errorf("expected no yardage for a tee box that does not exist")
	}
	if y, ok := c.FrontYards(0); !ok || y != 2700 {
		t.Errorf("expected front yards 2700, got %d (%v)", y, ok)
	}
	if y, ok := c.BackYards(0); !ok || y != 2700 {
		t.Errorf("expected back yards 2700, got %d (%v)", y, ok)
	}
	if _, ok := c.FrontYards(NoTeeBox); ok {
		t.Errorf("expected no front yards without a tee box")
	}
	if y, ok := c.TotalYards(1); !ok || y != 18*310 {
		t.Errorf("expected total yards %d, got %d (%v)", 18*310, y, ok)
	}
	if _, ok := c.TotalYards(NoTeeBox); ok {
		t.Errorf("expected no total without a tee box")
	}
}

func TestValidTeeBoxIndex(t *testing.T) {
	c := testCourse(18, 3)
	tests := map[int]bool{-2: false, -1: true, 0: true, 2: true, 3: false}
	for idx, want := range tests {
		if got := c.ValidTeeBoxIndex(idx); got != want {
			t.Errorf("index %d: expected %v, got %v", idx, want, got)
		}
	}
}

func TestCourseLocationAndUnit(t *testing.T) {
	c := testCourse(9, 0)
	if c.Location() != "Pebble Beach, CA, USA" {
		t.Errorf("unexpected location: '%s'", c.Location())
	}
	c.State = " "
	if c.Location() != "Pebble Beach, USA" {
		t.Errorf("unexpected location: '%s'", c.Location())
	}
	if c.LengthUnit() != "yards" {
		t.Errorf("unexpected unit: '%s'", c.LengthUnit())
	}
	c.LengthFormat = LengthMeters
	if c.LengthUnit() != "meters" {
		t.Errorf("unexpected unit: '%s'", c.LengthUnit())
	}
}
