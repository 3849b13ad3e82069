package matching

import (
	"fmt"
	"testing"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/profile"
)

func rankingFixture() (profile.CandidateProfile, []jobs.Job) {
	candidate := profile.CandidateProfile{
		Skills:               []string{"Go", "PostgreSQL", "Docker"},
		Location:             profile.Location{City: "Austin", State: "TX"},
		TotalExperienceYears: years(5),
	}
	list := []jobs.Job{
		{ID: "poor", RequiredSkills: []string{"Java", "Spring"}, Experience: jobs.ExperienceRange{Min: years(10)}},
		{ID: "good", RequiredSkills: []string{"Go", "Kafka"}, Location: "Dallas, TX"},
		{ID: "best", RequiredSkills: []string{"Go", "SQL", "Docker"}, Location: "Austin, TX"},
		{ID: "fair", RequiredSkills: []string{"Python", "Docker", "AWS", "GCP"}, Experience: jobs.ExperienceRange{Min: years(3), Max: years(4)}},
	}
	return candidate, list
}

func TestRankRecommendations(t *testing.T) {
	engine := NewEngine(Options{})
	candidate, list := rankingFixture()

	got := engine.RankRecommendations(candidate, list, 10)
	if got.Status != StatusOK {
		t.Fatalf("expected ok status, got %+v", got)
	}

	var order []string
	for _, r := range got.Results {
		order = append(order, r.Job.ID)
	}
	if fmt.Sprint(order) != "[best good fair]" {
		t.Fatalf("unexpected order: %v", order)
	}
	if got.Results[0].OverallScore != 100 {
		t.Fatalf("expected top score 100, got %d", got.Results[0].OverallScore)
	}
}

func TestRankRecommendationsLimitAndFloor(t *testing.T) {
	engine := NewEngine(Options{})
	candidate, list := rankingFixture()

	for limit := 1; limit <= 5; limit++ {
		got := engine.RankRecommendations(candidate, list, limit)
		if len(got.Results) > limit {
			t.Fatalf("limit %d: got %d results", limit, len(got.Results))
		}
		for i, r := range got.Results {
			if r.OverallScore < DefaultScoreFloor {
				t.Fatalf("result %s below floor: %d", r.Job.ID, r.OverallScore)
			}
			if i > 0 && got.Results[i-1].OverallScore < r.OverallScore {
				t.Fatalf("results are not sorted: %+v", got.Results)
			}
		}
	}
}

func TestRankRecommendationsCustomFloor(t *testing.T) {
	engine := NewEngine(Options{ScoreFloor: 90})
	candidate, list := rankingFixture()

	got := engine.RankRecommendations(candidate, list, 0)
	if len(got.Results) != 1 || got.Results[0].Job.ID != "best" {
		t.Fatalf("expected only the best job above 90, got %+v", got.Results)
	}
}

func TestRankRecommendationsNoSkills(t *testing.T) {
	engine := NewEngine(Options{})
	_, list := rankingFixture()

	got := engine.RankRecommendations(profile.CandidateProfile{Skills: []string{" "}}, list, 10)
	if got.Status != StatusNoSkills || len(got.Results) != 0 || got.Message == "" {
		t.Fatalf("expected no_skills short-circuit, got %+v", got)
	}
}

func TestRankRecommendationsNoMatches(t *testing.T) {
	engine := NewEngine(Options{})
	candidate := profile.CandidateProfile{Skills: []string{"cobol"}}
	list := []jobs.Job{{ID: "x", RequiredSkills: []string{"Rust"}, Experience: jobs.ExperienceRange{Min: years(8)}}}

	got := engine.RankRecommendations(candidate, list, 10)
	if got.Status != StatusNoMatches || got.Results == nil || len(got.Results) != 0 {
		t.Fatalf("expected empty no_matches result, got %+v", got)
	}
}
