package matching

import (
	"strings"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/profile"
)

const (
	// DefaultScoreFloor drops ranked results scoring below it.
	DefaultScoreFloor = 40
	// DefaultLimit applies when a ranking request has no positive limit.
	DefaultLimit = 10
)

// DefaultRegionalKeywords mark job locations that are reachable from anywhere.
var DefaultRegionalKeywords = []string{"remote", "anywhere"}

type Options struct {
	RegionalKeywords []string
	ScoreFloor       int
}

// Engine holds scoring configuration. It is safe for concurrent use.
type Engine struct {
	regional []string
	floor    int
}

func NewEngine(opts Options) *Engine {
	regional := opts.RegionalKeywords
	if regional == nil {
		regional = DefaultRegionalKeywords
	}
	floor := opts.ScoreFloor
	if floor <= 0 {
		floor = DefaultScoreFloor
	}
	return &Engine{regional: regional, floor: floor}
}

// ScoreFloor returns the minimum score kept in rankings.
func (e *Engine) ScoreFloor() int {
	return e.floor
}

type MatchResult struct {
	Job             jobs.Job        `json:"job"`
	Mode            string          `json:"mode"`
	SkillMatch      SkillMatch      `json:"skillMatch"`
	ExperienceMatch ExperienceMatch `json:"experienceMatch"`
	LocationMatch   LocationMatch   `json:"locationMatch"`
	OverallScore    int             `json:"overallScore"`
	Rating          string          `json:"rating"`
	Breakdown       Breakdown       `json:"breakdown"`
}

// ScoreJob compares one profile with one posting. Missing fields count as
// zero or neutral; scoring never fails.
func (e *Engine) ScoreJob(p profile.CandidateProfile, job jobs.Job, mode Mode) MatchResult {
	result := MatchResult{
		Job:             job,
		Mode:            mode.String(),
		SkillMatch:      MatchSkills(p.Skills, job.RequiredSkills),
		ExperienceMatch: MatchExperience(p.ExperienceYears(), job.Experience),
		LocationMatch:   MatchLocation(p.Location, job.Location, e.regional),
	}

	switch mode {
	case ModeSingleJob:
		result.OverallScore, result.Breakdown = SingleJobScore(result.SkillMatch.Percentage, result.ExperienceMatch)
	default:
		result.OverallScore, result.Breakdown = ListRankingScore(result.SkillMatch.Percentage, result.ExperienceMatch, result.LocationMatch)
	}
	result.Rating = Rating(result.OverallScore)

	return result
}

// JobAnalysis is a single-job score with advice for the candidate.
type JobAnalysis struct {
	MatchResult
	Recommendation string `json:"recommendation"`
}

// AnalyzeJob scores one posting in single-job mode.
func (e *Engine) AnalyzeJob(p profile.CandidateProfile, job jobs.Job) JobAnalysis {
	result := e.ScoreJob(p, job, ModeSingleJob)
	return JobAnalysis{MatchResult: result, Recommendation: recommendation(result)}
}

func recommendation(r MatchResult) string {
	var advice string
	switch r.Rating {
	case RatingExcellent:
		advice = "Strong match. Apply and lead with your matching skills."
	case RatingGood:
		advice = "Good match. Address the missing skills in your application."
	case RatingFair:
		advice = "Partial match. Consider building the missing skills before applying."
	default:
		advice = "Weak match. Focus on roles closer to your current skill set."
	}

	if missing := r.SkillMatch.MissingSkills; len(missing) > 0 && r.Rating != RatingPoor {
		if len(missing) > 3 {
			missing = missing[:3]
		}
		advice += " Missing: " + strings.Join(missing, ", ") + "."
	}
	if gap := r.ExperienceMatch.Gap; gap != nil {
		advice += " " + r.ExperienceMatch.Reason + "."
	}
	return advice
}
