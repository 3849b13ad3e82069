package matching

import (
	"math"
	"sort"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/profile"
)

type SkillDemand struct {
	Skill  string `json:"skill"`
	Demand int    `json:"demand"`
	// Percentage of sampled jobs requiring the skill, one decimal.
	Percentage float64 `json:"percentage"`
}

type GapReport struct {
	TargetRole          string        `json:"targetRole,omitempty"`
	SampleSize          int           `json:"sampleSize"`
	MissingSkills       []SkillDemand `json:"missingSkills"`
	MatchedSkills       []SkillDemand `json:"matchedSkills"`
	TotalDistinctSkills int           `json:"totalDistinctSkills"`
}

// AnalyzeSkillsGap counts required skills across jobs whose title contains
// targetRole, and ranks the ones the profile does not cover by demand.
func (e *Engine) AnalyzeSkillsGap(p profile.CandidateProfile, list []jobs.Job, targetRole string) GapReport {
	sample := jobs.FilterByTitle(list, targetRole)
	have := normalizeSkills(p.Skills)

	demand := make(map[string]int)
	for _, job := range sample {
		seen := make(map[string]struct{})
		for _, skill := range normalizeSkills(job.RequiredSkills) {
			if _, dup := seen[skill]; dup {
				continue
			}
			seen[skill] = struct{}{}
			demand[skill]++
		}
	}

	report := GapReport{
		TargetRole:          targetRole,
		SampleSize:          len(sample),
		MissingSkills:       []SkillDemand{},
		MatchedSkills:       []SkillDemand{},
		TotalDistinctSkills: len(demand),
	}

	for skill, count := range demand {
		entry := SkillDemand{
			Skill:      skill,
			Demand:     count,
			Percentage: math.Round(1000*float64(count)/float64(len(sample))) / 10,
		}
		if skillCovered(skill, have) {
			report.MatchedSkills = append(report.MatchedSkills, entry)
		} else {
			report.MissingSkills = append(report.MissingSkills, entry)
		}
	}

	byDemand(report.MissingSkills)
	byDemand(report.MatchedSkills)
	return report
}

func byDemand(list []SkillDemand) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Demand != list[j].Demand {
			return list[i].Demand > list[j].Demand
		}
		return list[i].Skill < list[j].Skill
	})
}
