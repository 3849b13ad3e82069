package matching

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects one of the two composite weightings.
type Mode int

const (
	// ModeListRanking weighs skills, experience and location for ranked lists.
	ModeListRanking Mode = iota
	// ModeSingleJob weighs skills and experience for a single posting.
	ModeSingleJob
)

func (m Mode) String() string {
	switch m {
	case ModeSingleJob:
		return "single-job"
	default:
		return "list-ranking"
	}
}

// ParseMode accepts the String form of a mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "list-ranking", "list":
		return ModeListRanking, nil
	case "single-job", "single":
		return ModeSingleJob, nil
	default:
		return ModeListRanking, fmt.Errorf("unknown scoring mode %q", s)
	}
}

// List-ranking weights.
const (
	ListSkillWeight          = 0.5
	ListExperienceMatched    = 30.0
	ListExperienceUnknown    = 15.0
	ListExperienceGapPenalty = 5.0
	ListLocationMatched      = 20.0
	ListLocationSameState    = 10.0
)

// Single-job weights.
const (
	SingleSkillWeight       = 0.7
	SingleExperienceMatched = 30.0
	SingleExperienceMissed  = 15.0
)

// Ratings.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingFair      = "Fair"
	RatingPoor      = "Poor"
)

// Breakdown holds the points each factor contributed.
type Breakdown struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
}

// ListRankingScore is round(skill*0.5 + experience + location).
func ListRankingScore(skillPct int, exp ExperienceMatch, loc LocationMatch) (int, Breakdown) {
	b := Breakdown{Skills: float64(skillPct) * ListSkillWeight}

	switch {
	case exp.Matches:
		b.Experience = ListExperienceMatched
	case exp.Gap != nil:
		b.Experience = math.Max(0, ListExperienceMatched-ListExperienceGapPenalty*float64(*exp.Gap))
	default:
		b.Experience = ListExperienceUnknown
	}

	switch {
	case loc.Matches:
		b.Location = ListLocationMatched
	case loc.SameState:
		b.Location = ListLocationSameState
	}

	return int(math.Round(b.Skills + b.Experience + b.Location)), b
}

// SingleJobScore is round(skill*0.7 + 30 or 15). Location is not weighed.
func SingleJobScore(skillPct int, exp ExperienceMatch) (int, Breakdown) {
	b := Breakdown{Skills: float64(skillPct) * SingleSkillWeight, Experience: SingleExperienceMissed}
	if exp.Matches {
		b.Experience = SingleExperienceMatched
	}
	return int(math.Round(b.Skills + b.Experience)), b
}

func Rating(score int) string {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingFair
	default:
		return RatingPoor
	}
}
