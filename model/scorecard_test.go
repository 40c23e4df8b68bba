package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseScorecardMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ScorecardMode
		err      bool
	}{
		{input: "all-holes", expected: ModeAllHoles},
		{input: "ALL-HOLES", expected: ModeAllHoles},
		{input: "front-and-back", expected: ModeFrontAndBack},
		{input: " total-score ", expected: ModeTotalScore},
		{input: "total", err: true},
		{input: "", err: true},
	}

	for _, tc := range tests {
		m, err := ParseScorecardMode(tc.input)
		if tc.err {
			if !errors.Is(err, ErrUnknownMode) {
				t.Errorf("input: '%s', expected ErrUnknownMode, got '%v'", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("input: '%s', unexpected error: %v", tc.input, err)
		}
		if m != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got '%s'", tc.input, tc.expected, m)
		}
	}
}

func TestScoreKeys(t *testing.T) {
	tests := map[string]struct {
		mode     ScorecardMode
		holes    int
		expected []string
	}{
		"all holes 9":    {mode: ModeAllHoles, holes: 9, expected: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		"front and back": {mode: ModeFrontAndBack, holes: 18, expected: []string{"front", "back"}},
		"total":          {mode: ModeTotalScore, holes: 18, expected: []string{"total"}},
		"unknown":        {mode: ScorecardMode("nope"), holes: 18, expected: nil},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := ScoreKeys(tc.mode, tc.holes)
			if !reflect.DeepEqual(tc.expected, got) {
				t.Errorf("expected: %v, got: %v", tc.expected, got)
			}
		})
	}

	if n := len(ScoreKeys(ModeAllHoles, 18)); n != 18 {
		t.Errorf("expected 18 keys for an 18 hole course, got %d", n)
	}
}

func TestAvailableModes(t *testing.T) {
	for holes := 1; holes <= 27; holes++ {
		modes := AvailableModes(holes)
		hasFrontBack := ModeAvailable(ModeFrontAndBack, holes)
		if holes == 18 && !hasFrontBack {
			t.Errorf("front and back should be available on 18 holes")
		}
		if holes != 18 && hasFrontBack {
			t.Errorf("front and back should not be available on %d holes: %v", holes, modes)
		}
		if !ModeAvailable(ModeAllHoles, holes) || !ModeAvailable(ModeTotalScore, holes) {
			t.Errorf("all holes and total should always be available, got %v", modes)
		}
	}
}

func TestNewScores(t *testing.T) {
	s := NewScores(ModeAllHoles, 18)
	if !s.HasKeys(ScoreKeys(ModeAllHoles, 18)) {
		t.Errorf("new scores do not have the mode's keys: %v", s)
	}
	if !s.Empty() {
		t.Errorf("new scores should be empty")
	}

	s["3"] = "4"
	if s.Empty() {
		t.Errorf("scores with an entry should not be empty")
	}
	if s.HasKeys(ScoreKeys(ModeTotalScore, 18)) {
		t.Errorf("all holes scores should not match the total keys")
	}
}

func TestScoresTotal(t *testing.T) {
	tests := map[string]struct {
		scores   Scores
		expected int
	}{
		"empty":       {scores: Scores{"1": "", "2": ""}, expected: 0},
		"some":        {scores: Scores{"1": "4", "2": "", "3": "5"}, expected: 9},
		"non numeric": {scores: Scores{"1": "4", "2": "x"}, expected: 4},
		"total":       {scores: Scores{"total": "101"}, expected: 101},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.scores.Total(); got != tc.expected {
				t.Errorf("expected: %d, got: %d", tc.expected, got)
			}
		})
	}
}

func TestScoresFinalize(t *testing.T) {
	res, err := Scores{"front": "41", "back": "39"}.Finalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := Scorecard{"front": 41, "back": 39}
	if !reflect.DeepEqual(expected, res) {
		t.Errorf("expected: %v, got: %v", expected, res)
	}
	if res.Total() != 80 {
		t.Errorf("expected total of 80, got %d", res.Total())
	}

	if _, err := (Scores{"front": "41", "back": ""}).Finalize(); err == nil {
		t.Errorf("expected an error for a blank score")
	}
	if _, err := (Scores{"total": "abc"}).Finalize(); err == nil {
		t.Errorf("expected an error for a non-numeric score")
	}
	if _, err := (Scores{"front": "0", "back": "39"}).Finalize(); err == nil {
		t.Errorf("expected an error for a zero score")
	}
}

func TestScoresMissing(t *testing.T) {
	s := Scores{"1": "4", "2": "", "10": ""}
	expected := []string{"10", "2"}
	if got := s.Missing(); !reflect.DeepEqual(expected, got) {
		t.Errorf("expected: %v, got: %v", expected, got)
	}
}

func TestValidScoreInput(t *testing.T) {
	tests := map[string]struct {
		mode  ScorecardMode
		input string
		want  bool
	}{
		"blank":             {mode: ModeAllHoles, input: "", want: true},
		"single digit":      {mode: ModeAllHoles, input: "4", want: true},
		"two digits":        {mode: ModeAllHoles, input: "12", want: true},
		"three digits hole": {mode: ModeAllHoles, input: "100", want: false},
		"three digits nine": {mode: ModeFrontAndBack, input: "100", want: false},
		"three digit total": {mode: ModeTotalScore, input: "104", want: true},
		"four digit total":  {mode: ModeTotalScore, input: "1000", want: false},
		"letters":           {mode: ModeAllHoles, input: "a", want: false},
		"negative":          {mode: ModeAllHoles, input: "-4", want: false},
		"decimal":           {mode: ModeAllHoles, input: "4.", want: false},
		"space":             {mode: ModeTotalScore, input: " 9", want: false},
		"zero":              {mode: ModeAllHoles, input: "0", want: false},
		"zeros":             {mode: ModeTotalScore, input: "000", want: false},
		"leading zero":      {mode: ModeAllHoles, input: "05", want: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ValidScoreInput(tc.mode, tc.input); got != tc.want {
				t.Errorf("expected: %v, got: %v", tc.want, got)
			}
		})
	}
}
