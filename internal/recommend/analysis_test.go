package recommend

import (
	"errors"
	"strings"
	"testing"

	"github.com/spigell/resume-matcher/internal/profile"
)

func TestValidateResumeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{name: "valid", text: resumeText, ok: true},
		{name: "too short", text: "engineer, experience"},
		{name: "too long", text: strings.Repeat("experience education ", 3000)},
		{name: "one indicator", text: strings.Repeat("experience ", 5) + strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateResumeText(tt.text)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected InputError, got %v", err)
			}
		})
	}
}

func TestExperienceYears(t *testing.T) {
	t.Parallel()

	ten := 10
	tests := []struct {
		name    string
		text    string
		profile profile.CandidateProfile
		want    int
	}{
		{name: "phrase wins", text: "I have 7 years of experience", profile: profile.CandidateProfile{TotalExperienceYears: &ten}, want: 7},
		{name: "profile value", text: "no phrase here", profile: profile.CandidateProfile{TotalExperienceYears: &ten}, want: 10},
		{name: "default", text: "no phrase here", want: DefaultExperienceYears},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExperienceYears(tt.text, tt.profile); got != tt.want {
				t.Fatalf("ExperienceYears = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExperienceLevel(t *testing.T) {
	t.Parallel()

	cases := map[int]string{0: LevelEntry, 1: LevelEntry, 2: LevelMid, 4: LevelMid, 5: LevelSenior, 9: LevelSenior, 10: LevelLead, 30: LevelLead}
	for years, want := range cases {
		if got := ExperienceLevel(years); got != want {
			t.Errorf("ExperienceLevel(%d) = %s, want %s", years, got, want)
		}
	}
}

func TestDetectIndustry(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Clinical nurse at a regional hospital caring for every patient": "healthcare",
		"Investment banking analyst, financial modelling and audit":      "finance",
		"Barista and shift lead":                                         DefaultIndustry,
		"Software developer at a fintech bank":                           "technology",
	}
	for text, want := range tests {
		if got := DetectIndustry(text); got != want {
			t.Errorf("DetectIndustry(%q) = %s, want %s", text, got, want)
		}
	}
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	got := Keywords("Go Developer", []string{"Go", " ", "go", "Docker", "Kubernetes", "AWS"}, "technology")
	if strings.Join(got, "|") != "Go Developer|Go|Docker|technology" {
		t.Fatalf("unexpected keywords: %v", got)
	}

	got = Keywords("", []string{"SQL"}, "technology")
	if strings.Join(got, "|") != "SQL|technology" {
		t.Fatalf("unexpected keywords: %v", got)
	}
}
