package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type ScorecardMode string

const (
	ModeAllHoles     ScorecardMode = "all-holes"
	ModeFrontAndBack ScorecardMode = "front-and-back"
	ModeTotalScore   ScorecardMode = "total-score"
)

const (
	KeyFront = "front"
	KeyBack  = "back"
	KeyTotal = "total"
)

var ErrUnknownMode = errors.New("unknown scorecard mode")

func ParseScorecardMode(s string) (ScorecardMode, error) {
	switch ScorecardMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAllHoles:
		return ModeAllHoles, nil
	case ModeFrontAndBack:
		return ModeFrontAndBack, nil
	case ModeTotalScore:
		return ModeTotalScore, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownMode, s)
	}
}

func (m ScorecardMode) Label() string {
	switch m {
	case ModeAllHoles:
		return "All holes"
	case ModeFrontAndBack:
		return "Front and back 9 only"
	case ModeTotalScore:
		return "Total score only"
	default:
		return string(m)
	}
}

// MaxScoreLength is the longest entry accepted for a single score in the mode.
// Totals for a full round routinely need three digits, hole and nine-hole
// scores never do.
func (m ScorecardMode) MaxScoreLength() int {
	if m == ModeTotalScore {
		return 3
	}
	return 2
}

// AvailableModes lists the modes a course can be scored with, in display
// order. Front and back nines only exist on an 18 hole course.
func AvailableModes(numHoles int) []ScorecardMode {
	if numHoles == 18 {
		return []ScorecardMode{ModeAllHoles, ModeFrontAndBack, ModeTotalScore}
	}
	return []ScorecardMode{ModeAllHoles, ModeTotalScore}
}

func ModeAvailable(m ScorecardMode, numHoles int) bool {
	for _, a := range AvailableModes(numHoles) {
		if a == m {
			return true
		}
	}
	return false
}

// ScoreKeys returns the keys a scorecard in the given mode is made of, in
// display order.
func ScoreKeys(m ScorecardMode, numHoles int) []string {
	switch m {
	case ModeAllHoles:
		keys := make([]string, 0, numHoles)
		for i := 1; i <= numHoles; i++ {
			keys = append(keys, strconv.Itoa(i))
		}
		return keys
	case ModeFrontAndBack:
		return []string{KeyFront, KeyBack}
	case ModeTotalScore:
		return []string{KeyTotal}
	default:
		return nil
	}
}

// Scores holds the scores being typed into a scorecard, keyed by hole number,
// "front"/"back" or "total" depending on the mode. Values stay as text until
// the round is posted.
type Scores map[string]string

func NewScores(m ScorecardMode, numHoles int) Scores {
	keys := ScoreKeys(m, numHoles)
	s := make(Scores, len(keys))
	for _, k := range keys {
		s[k] = ""
	}
	return s
}

func (s Scores) Clone() Scores {
	if s == nil {
		return nil
	}
	c := make(Scores, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Empty is true when nothing has been entered for any key.
func (s Scores) Empty() bool {
	for _, v := range s {
		if v != "" {
			return false
		}
	}
	return true
}

// Missing returns the keys with no entry, sorted.
func (s Scores) Missing() []string {
	var missing []string
	for k, v := range s {
		if v == "" {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// Total adds up every numeric entry. Blank and non-numeric entries count as
// zero, this is only for display.
func (s Scores) Total() int {
	total := 0
	for _, v := range s {
		n, err := strconv.Atoi(v)
		if err == nil {
			total += n
		}
	}
	return total
}

// HasKeys is true when s has exactly the given keys.
func (s Scores) HasKeys(keys []string) bool {
	if len(s) != len(keys) {
		return false
	}
	for _, k := range keys {
		if _, ok := s[k]; !ok {
			return false
		}
	}
	return true
}

// Finalize converts every entry to an integer. It fails on the first entry
// that is blank or not a positive number.
func (s Scores) Finalize() (Scorecard, error) {
	res := make(Scorecard, len(s))
	for k, v := range s {
		if v == "" {
			return nil, fmt.Errorf("no score entered for '%s'", k)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("score for '%s' is not a number: %w", k, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("score for '%s' must be positive", k)
		}
		res[k] = n
	}
	return res, nil
}

// ValidScoreInput reports whether the text typed for a score can be accepted.
// Blank is always accepted, otherwise the value must be a positive whole
// number no longer than the mode allows.
func ValidScoreInput(m ScorecardMode, v string) bool {
	if v == "" {
		return true
	}
	if len(v) > m.MaxScoreLength() {
		return false
	}
	positive := false
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
		positive = positive || r != '0'
	}
	return positive
}

// PartialHole is a hole of a scorecard that may not have a score yet. Score
// is zero when nothing was entered.
type PartialHole struct {
	Score int
	Par   int
}
