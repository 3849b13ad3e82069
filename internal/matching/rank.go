package matching

import (
	"sort"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/profile"
)

// Rank statuses.
const (
	StatusOK        = "ok"
	StatusNoSkills  = "no_skills"
	StatusNoMatches = "no_matches"
)

type RankResult struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Results []MatchResult `json:"results"`
}

// RankRecommendations scores every job in list-ranking mode, sorts by score
// descending, drops scores below the floor and keeps at most limit results.
// A profile without skills is not scored at all.
func (e *Engine) RankRecommendations(p profile.CandidateProfile, list []jobs.Job, limit int) RankResult {
	if len(normalizeSkills(p.Skills)) == 0 {
		return RankResult{
			Status:  StatusNoSkills,
			Message: "Profile has no skills to match; add skills to your resume to get recommendations",
			Results: []MatchResult{},
		}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	scored := make([]MatchResult, 0, len(list))
	for _, job := range list {
		result := e.ScoreJob(p, job, ModeListRanking)
		if result.OverallScore < e.floor {
			continue
		}
		scored = append(scored, result)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	if len(scored) == 0 {
		return RankResult{
			Status:  StatusNoMatches,
			Message: "No jobs scored above the minimum match threshold",
			Results: scored,
		}
	}
	return RankResult{Status: StatusOK, Results: scored}
}
