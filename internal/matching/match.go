// Package matching scores candidate profiles against job postings.
package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/profile"
)

// Bounds applied when a range leaves one side open.
const (
	defaultMinYears = 0
	defaultMaxYears = 100
)

type SkillMatch struct {
	Percentage    int      `json:"percentage"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

type ExperienceMatch struct {
	Matches bool   `json:"matches"`
	Reason  string `json:"reason"`
	// Gap is set only when the candidate is below the minimum.
	Gap *int `json:"gap,omitempty"`
}

type LocationMatch struct {
	Matches   bool   `json:"matches"`
	SameState bool   `json:"sameState"`
	Reason    string `json:"reason"`
}

// MatchSkills compares lowercased skills. A required skill matches when it is
// a substring or a superstring of any candidate skill. Zero required skills
// give 0%: no requirement carries no signal.
func MatchSkills(candidate, required []string) SkillMatch {
	have := normalizeSkills(candidate)
	want := normalizeSkills(required)

	result := SkillMatch{MatchedSkills: []string{}, MissingSkills: []string{}}
	for _, req := range want {
		if skillCovered(req, have) {
			result.MatchedSkills = append(result.MatchedSkills, req)
		} else {
			result.MissingSkills = append(result.MissingSkills, req)
		}
	}

	if len(want) > 0 {
		result.Percentage = int(math.Round(100 * float64(len(result.MatchedSkills)) / float64(len(want))))
	}
	return result
}

// MatchExperience checks years against a job range. Exceeding the maximum
// still matches (overqualified).
func MatchExperience(years int, r jobs.ExperienceRange) ExperienceMatch {
	if !r.Specified() {
		return ExperienceMatch{Matches: true, Reason: "No specific experience requirement"}
	}

	minYears, maxYears := defaultMinYears, defaultMaxYears
	if r.Min != nil {
		minYears = *r.Min
	}
	if r.Max != nil {
		maxYears = *r.Max
	}

	switch {
	case years < minYears:
		gap := minYears - years
		return ExperienceMatch{
			Reason: fmt.Sprintf("Requires %d+ years of experience, you have %d", minYears, years),
			Gap:    &gap,
		}
	case years > maxYears:
		return ExperienceMatch{
			Matches: true,
			Reason:  fmt.Sprintf("Overqualified: %d years exceeds the %d year maximum", years, maxYears),
		}
	default:
		return ExperienceMatch{
			Matches: true,
			Reason:  fmt.Sprintf("%d years of experience fits the requirement", years),
		}
	}
}

// MatchLocation compares the candidate city and state with the free-text job
// location. A regional keyword found in the job location counts like the
// same state.
func MatchLocation(loc profile.Location, jobLocation string, regionalKeywords []string) LocationMatch {
	where := strings.ToLower(strings.TrimSpace(jobLocation))
	if where == "" {
		return LocationMatch{Reason: "Job location not specified"}
	}

	city := strings.ToLower(strings.TrimSpace(loc.City))
	state := strings.ToLower(strings.TrimSpace(loc.State))

	if city != "" && strings.Contains(where, city) {
		return LocationMatch{Matches: true, SameState: true, Reason: "Job is in " + loc.City}
	}
	if state != "" && strings.Contains(where, state) {
		return LocationMatch{SameState: true, Reason: "Job is in " + loc.State}
	}
	for _, kw := range regionalKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(where, kw) {
			return LocationMatch{SameState: true, Reason: "Regional match: " + kw}
		}
	}
	return LocationMatch{Reason: "Different location: " + strings.TrimSpace(jobLocation)}
}

func normalizeSkills(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func skillCovered(required string, candidate []string) bool {
	for _, c := range candidate {
		if strings.Contains(c, required) || strings.Contains(required, c) {
			return true
		}
	}
	return false
}
