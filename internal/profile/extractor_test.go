package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubCompleter struct {
	response string
	err      error
	panics   bool
	requests []ai.CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.panics {
		panic("boom")
	}
	return s.response, s.err
}

func (s *stubCompleter) Model() string { return "stub-model" }

const aiResponse = "```json\n" + `{
  "name": "Jane Doe",
  "email": "jane@example.com",
  "location": "Austin, TX, USA",
  "skills": "Go, Kubernetes, SQL",
  "experience": [
    {"jobTitle": "Engineer", "company": "Acme", "endDate": "present", "current": "yes"},
    {"description": "no title"}
  ],
  "languages": [{"language": "English", "proficiency": "Fluent"}],
  "totalExperienceYears": "6 years",
  "github": "https://github.com/jane",
  "linkedin": "https://example.com/jane"
}` + "\n```"

func TestExtractUsesAITier(t *testing.T) {
	completer := &stubCompleter{response: aiResponse}
	core, logs := observer.New(zapcore.InfoLevel)
	extractor := NewExtractor(completer, Options{}, zap.New(core))

	got := extractor.Extract(context.Background(), sampleResume)

	if got.Metadata.Tier != TierAI || got.Metadata.Model != "stub-model" || got.Metadata.Confidence != AIConfidence {
		t.Fatalf("unexpected metadata: %+v", got.Metadata)
	}
	if got.Name != "Jane Doe" || got.Email != "jane@example.com" {
		t.Fatalf("unexpected contact data: %+v", got)
	}
	if got.Location.City != "Austin" || got.Location.State != "TX" || got.Location.Country != "USA" {
		t.Fatalf("unexpected location: %+v", got.Location)
	}
	if strings.Join(got.Skills, "|") != "Go|Kubernetes|SQL" {
		t.Fatalf("unexpected skills: %v", got.Skills)
	}
	if len(got.Experience) != 1 || !got.Experience[0].Current {
		t.Fatalf("unexpected experience: %+v", got.Experience)
	}
	if got.ExperienceYears() != 6 {
		t.Fatalf("expected 6 years, got %d", got.ExperienceYears())
	}
	if got.Languages[0].Proficiency != ProficiencyFluent {
		t.Fatalf("unexpected languages: %+v", got.Languages)
	}
	if got.LinkedIn != "" {
		t.Fatalf("expected non-linkedin URL to be dropped, got %q", got.LinkedIn)
	}

	if len(completer.requests) != 1 {
		t.Fatalf("expected 1 completion request, got %d", len(completer.requests))
	}
	req := completer.requests[0]
	if req.Temperature != defaultTemperature || req.MaxOutputTokens != defaultMaxOutputTokens {
		t.Fatalf("unexpected request settings: %+v", req)
	}
	if !strings.Contains(req.Prompt, "Backend engineer with 7 years") || strings.Contains(req.Prompt, resumePlaceholder) {
		t.Fatalf("expected resume text embedded in prompt")
	}

	entries := logs.FilterMessage("profile extraction finished").All()
	if len(entries) != 1 {
		t.Fatalf("expected one extraction log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields[logger.FieldTier] != TierAI {
		t.Fatalf("expected tier field, got %v", fields)
	}
	if fields["skills"] != int64(3) || fields["experience"] != int64(1) || fields["projects"] != int64(0) {
		t.Fatalf("unexpected coverage fields: %v", fields)
	}
}

func TestExtractFallsBackToHeuristics(t *testing.T) {
	tests := []struct {
		name      string
		completer ai.Completer
		reason    string
	}{
		{name: "disabled", completer: nil, reason: "disabled"},
		{name: "unreachable", completer: &stubCompleter{err: &ai.ServiceError{Provider: "stub", Err: errors.New("dial tcp: connection refused")}}, reason: "connection refused"},
		{name: "no json", completer: &stubCompleter{response: "I cannot help with that."}, reason: "no JSON object"},
		{name: "malformed json", completer: &stubCompleter{response: `{"name": "Jane",}`}, reason: "invalid JSON"},
		{name: "panic", completer: &stubCompleter{panics: true}, reason: "panicked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			extractor := NewExtractor(tt.completer, Options{}, zap.New(core))

			got := extractor.Extract(context.Background(), sampleResume)

			if got.Metadata.Tier != TierHeuristic || got.Metadata.Confidence != HeuristicConfidence {
				t.Fatalf("expected heuristic metadata, got %+v", got.Metadata)
			}
			if got.Name != "Jane Doe" || got.Email != "jane.doe@example.com" {
				t.Fatalf("unexpected heuristic profile: %+v", got)
			}
			if got.LinkedIn != "https://linkedin.com/in/janedoe" {
				t.Fatalf("expected cleaned linkedin, got %q", got.LinkedIn)
			}
			if len(got.Metadata.Errors) == 0 || !strings.Contains(got.Metadata.Errors[0], tt.reason) {
				t.Fatalf("expected parsing error mentioning %q, got %v", tt.reason, got.Metadata.Errors)
			}
			if logs.FilterMessage("ai extraction unavailable, using heuristics").Len() != 1 {
				t.Fatalf("expected fallback warning to be logged")
			}
		})
	}
}

func TestExtractNeverFailsOnOddInput(t *testing.T) {
	extractor := NewExtractor(&stubCompleter{response: `{"skills": {"nested": true}, "experience": "none"}`}, Options{}, nil)

	for _, text := range []string{"x", strings.Repeat("é", 20000), "\x00\x01"} {
		got := extractor.Extract(context.Background(), text)
		if got.Skills == nil || got.TotalExperienceYears == nil {
			t.Fatalf("expected cleaned profile for %q", text[:1])
		}
	}
}

func TestBuildPromptTruncates(t *testing.T) {
	prompt := buildPrompt(strings.Repeat("a", 50), 10)
	if !strings.Contains(prompt, strings.Repeat("a", 10)) || strings.Contains(prompt, strings.Repeat("a", 11)) {
		t.Fatalf("expected resume text truncated to 10 characters")
	}
}
