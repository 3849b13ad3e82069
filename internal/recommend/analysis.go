package recommend

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-matcher/internal/profile"
)

const (
	MinResumeChars = 100
	MaxResumeChars = 50000
	// MinIndicators is how many resume keywords the text must contain.
	MinIndicators = 2

	// DefaultExperienceYears is assumed when neither the text nor the profile
	// states any experience.
	DefaultExperienceYears = 2
	DefaultIndustry        = "technology"

	topSkillCount = 3
)

// Experience levels.
const (
	LevelEntry  = "entry"
	LevelMid    = "mid"
	LevelSenior = "senior"
	LevelLead   = "lead"
)

var resumeIndicators = []string{
	"experience", "education", "skills", "work", "project", "university",
	"developer", "engineer", "manager", "email", "phone", "summary",
	"responsibilities",
}

type industryKeywords struct {
	name     string
	keywords []string
}

type industryMatcher struct {
	name     string
	patterns []*regexp.Regexp
}

// Checked in order; the industry with the most hits wins, ties go to the earlier entry.
var industries = []industryKeywords{
	{"technology", []string{"software", "developer", "engineer", "programming", "cloud", "devops", "saas", "frontend", "backend"}},
	{"finance", []string{"bank", "banking", "finance", "financial", "investment", "trading", "accounting", "fintech", "audit"}},
	{"healthcare", []string{"hospital", "clinical", "patient", "medical", "healthcare", "pharma", "nurse", "physician"}},
	{"education", []string{"teacher", "teaching", "curriculum", "school", "tutor", "lecturer", "edtech"}},
	{"marketing", []string{"marketing", "seo", "brand", "campaign", "advertising", "social media", "content strategy"}},
	{"sales", []string{"sales", "account executive", "business development", "crm", "quota"}},
	{"design", []string{"designer", "figma", "ux", "ui design", "illustrator", "photoshop"}},
	{"manufacturing", []string{"manufacturing", "production line", "assembly", "lean", "six sigma", "plant"}},
}

// Analysis summarises the candidate for the recommendation envelope.
type Analysis struct {
	Name            string   `json:"name,omitempty"`
	Role            string   `json:"role,omitempty"`
	ExperienceYears int      `json:"experienceYears"`
	ExperienceLevel string   `json:"experienceLevel"`
	Industry        string   `json:"industry"`
	TopSkills       []string `json:"topSkills"`
	SkillCount      int      `json:"skillCount"`
	Tier            string   `json:"tier"`
	Confidence      float64  `json:"confidence"`
}

// ValidateResumeText rejects text that is too short, too long or does not
// look like a resume.
func ValidateResumeText(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < MinResumeChars {
		return &InputError{Reason: fmt.Sprintf("text is too short (%d characters, minimum %d)", n, MinResumeChars)}
	}
	if n > MaxResumeChars {
		return &InputError{Reason: fmt.Sprintf("text is too long (%d characters, maximum %d)", n, MaxResumeChars)}
	}

	lower := strings.ToLower(text)
	found := 0
	for _, word := range resumeIndicators {
		if strings.Contains(lower, word) {
			found++
		}
	}
	if found < MinIndicators {
		return &InputError{Reason: "text does not look like a resume"}
	}
	return nil
}

// ExperienceYears prefers an explicit phrase in the text, then a positive
// value on the profile, then DefaultExperienceYears.
func ExperienceYears(text string, p profile.CandidateProfile) int {
	if years, ok := profile.YearsOfExperience(text); ok {
		return years
	}
	if years := p.ExperienceYears(); years > 0 {
		return years
	}
	return DefaultExperienceYears
}

func ExperienceLevel(years int) string {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelMid
	case years < 10:
		return LevelSenior
	default:
		return LevelLead
	}
}

var industryMatchers = compileIndustries(industries)

func compileIndustries(list []industryKeywords) []industryMatcher {
	out := make([]industryMatcher, 0, len(list))
	for _, ind := range list {
		m := industryMatcher{name: ind.name}
		for _, kw := range ind.keywords {
			m.patterns = append(m.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		out = append(out, m)
	}
	return out
}

// DetectIndustry counts whole-word keyword hits per industry.
func DetectIndustry(text string) string {
	lower := strings.ToLower(text)
	best, bestHits := DefaultIndustry, 0
	for _, ind := range industryMatchers {
		hits := 0
		for _, re := range ind.patterns {
			if re.MatchString(lower) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = ind.name, hits
		}
	}
	return best
}

// Keywords returns the role, the first skills and the industry without
// case-insensitive duplicates.
func Keywords(role string, skills []string, industry string) []string {
	terms := []string{role}
	terms = append(terms, topSkills(skills)...)
	terms = append(terms, industry)

	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func topSkills(skills []string) []string {
	out := make([]string, 0, topSkillCount)
	for _, s := range skills {
		if len(out) == topSkillCount {
			break
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func analyze(text, desiredRole string, p profile.CandidateProfile) Analysis {
	years := ExperienceYears(text, p)

	role := strings.TrimSpace(desiredRole)
	if role == "" {
		role = p.CurrentRole
	}

	return Analysis{
		Name:            p.Name,
		Role:            role,
		ExperienceYears: years,
		ExperienceLevel: ExperienceLevel(years),
		Industry:        DetectIndustry(text),
		TopSkills:       topSkills(p.Skills),
		SkillCount:      len(p.Skills),
		Tier:            p.Metadata.Tier,
		Confidence:      p.Metadata.Confidence,
	}
}
