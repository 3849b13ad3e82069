package profile

import (
	"reflect"
	"testing"
)

const sampleResume = `CURRICULUM VITAE
Jane Doe
Senior Backend Engineer
jane.doe@example.com | +1 (555) 123-4567 | linkedin.com/in/janedoe | https://github.com/janedoe

Summary
Backend engineer with 7 years of experience building Go and Python services on AWS.

Experience
Acme Corp, 2018 - 2024
Built REST and gRPC APIs, deployed with Docker and Kubernetes. Worked with PostgreSQL and Redis.
Skills: C++, C#, Node.js, CI/CD`

func TestHeuristic(t *testing.T) {
	got := Heuristic(sampleResume)

	if got.Name != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %q", got.Name)
	}
	if got.Email != "jane.doe@example.com" {
		t.Fatalf("unexpected email: %q", got.Email)
	}
	if got.Phone != "+1 (555) 123-4567" {
		t.Fatalf("unexpected phone: %q", got.Phone)
	}
	if got.LinkedIn != "linkedin.com/in/janedoe" {
		t.Fatalf("unexpected linkedin: %q", got.LinkedIn)
	}
	if got.GitHub != "https://github.com/janedoe" {
		t.Fatalf("unexpected github: %q", got.GitHub)
	}
	if got.ExperienceYears() != 7 {
		t.Fatalf("expected 7 years, got %d", got.ExperienceYears())
	}
	if got.Metadata.Confidence != HeuristicConfidence || got.Metadata.Tier != TierHeuristic {
		t.Fatalf("unexpected metadata: %+v", got.Metadata)
	}

	want := []string{"Go", "Python", "C++", "C#", "PostgreSQL", "Redis", "Node.js", "REST", "gRPC", "Docker", "Kubernetes", "AWS", "CI/CD"}
	if !reflect.DeepEqual(got.Skills, want) {
		t.Fatalf("unexpected skills:\nwant %v\ngot  %v", want, got.Skills)
	}
}

func TestHeuristicSkipsContactLinesForName(t *testing.T) {
	got := Heuristic("jane@example.com\n+44 20 7946 0958\nJohn Smith\nEngineer")
	if got.Name != "John Smith" {
		t.Fatalf("expected John Smith, got %q", got.Name)
	}
}

func TestHeuristicWithoutSignals(t *testing.T) {
	got := Heuristic("12345\n\n")
	if got.Name != "" || got.Email != "" || got.Phone != "" {
		t.Fatalf("expected empty contact data, got %+v", got)
	}
	if len(got.Skills) != 0 {
		t.Fatalf("expected no skills, got %v", got.Skills)
	}
	if got.TotalExperienceYears != nil {
		t.Fatalf("expected unknown experience, got %d", *got.TotalExperienceYears)
	}
}

func TestFindPhoneIgnoresYearRanges(t *testing.T) {
	if got := findPhone("Acme 2018 - 2024\nCall 555-123-4567"); got != "555-123-4567" {
		t.Fatalf("unexpected phone: %q", got)
	}
}

func TestYearsOfExperience(t *testing.T) {
	tests := []struct {
		text  string
		want  int
		found bool
	}{
		{"5 years of experience in Go", 5, true},
		{"10+ years experience", 10, true},
		{"3 yrs of professional software experience", 3, true},
		{"Experience: 4 years", 4, true},
		{"Worked at Acme from 2018", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, found := YearsOfExperience(tt.text)
		if got != tt.want || found != tt.found {
			t.Fatalf("YearsOfExperience(%q) = %d, %v; want %d, %v", tt.text, got, found, tt.want, tt.found)
		}
	}
}
