package profile

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HeuristicConfidence is the confidence reported for heuristic profiles.
const HeuristicConfidence = 0.3

const nameScanLines = 5

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?\(?\d[\d \t().\-]{6,}\d`)
	linkedInRe = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/[^\s,;|)]+`)
	gitHubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[^\s,;|)]+`)
	nonWordRe  = regexp.MustCompile(`[^\p{L}\p{N}]+`)

	yearsPhraseRe = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b(?:\s+of)?(?:\s+[\w/.+#-]+){0,3}?\s+experience` +
		`|experience\s*(?:of|:)?\s*(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`)

	headerWords = []string{"resume", "curriculum vitae", "cv", "summary", "profile", "contact", "objective"}
)

// skillVocabulary is matched as whole words against normalized text.
var skillVocabulary = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript", "Ruby", "PHP", "Rust", "Kotlin", "Swift", "Scala",
	"C++", "C#", ".NET", "SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "Kafka", "RabbitMQ",
	"React", "Angular", "Vue", "Node.js", "Next.js", "Django", "Flask", "FastAPI", "Spring", "Express",
	"HTML", "CSS", "GraphQL", "REST", "gRPC", "Docker", "Kubernetes", "Terraform", "Ansible", "Jenkins",
	"AWS", "Azure", "GCP", "Linux", "Git", "CI/CD", "Microservices", "Machine Learning", "Data Analysis",
	"Pandas", "NumPy", "TensorFlow", "PyTorch", "Excel", "Tableau", "Power BI", "Figma", "Agile", "Scrum",
	"Project Management", "Communication", "Leadership", "Salesforce", "SEO", "Marketing", "Accounting",
}

// symbolSkills lose their meaning when punctuation is stripped.
var symbolSkills = map[string]string{
	"C++":  "c++",
	"C#":   "c#",
	".NET": ".net",
}

// Heuristic builds a draft profile from text using local pattern matching only.
// It never fails.
func Heuristic(text string) CandidateProfile {
	lines := nonEmptyLines(text)

	p := CandidateProfile{
		Name:     guessName(lines),
		Email:    emailRe.FindString(text),
		Phone:    findPhone(text),
		Skills:   matchVocabulary(text),
		LinkedIn: linkedInRe.FindString(text),
		GitHub:   gitHubRe.FindString(text),
		Metadata: Metadata{
			Tier:       TierHeuristic,
			Confidence: HeuristicConfidence,
		},
	}
	if years, ok := YearsOfExperience(text); ok {
		p.TotalExperienceYears = &years
	}
	return p
}

// YearsOfExperience finds an explicit "N years of experience" phrase.
func YearsOfExperience(text string) (int, bool) {
	m := yearsPhraseRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func guessName(lines []string) string {
	for i, line := range lines {
		if i >= nameScanLines {
			break
		}
		if plausibleName(line) {
			return line
		}
	}
	return ""
}

func plausibleName(line string) bool {
	if utf8.RuneCountInString(line) > 60 {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "@") || strings.Contains(lower, "http") || strings.Contains(lower, "www.") {
		return false
	}
	if phoneRe.MatchString(line) {
		return false
	}
	for _, h := range headerWords {
		if lower == h || strings.HasPrefix(lower, h+":") {
			return false
		}
	}

	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 5 {
		return false
	}
	letters := 0
	for _, r := range line {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 2
}

// findPhone returns the first phone-shaped run holding 7 to 15 digits.
func findPhone(text string) string {
	for _, candidate := range phoneRe.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits >= 7 && digits <= 15 && !looksLikeYearRange(candidate) {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

func looksLikeYearRange(s string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(fields) < 2 {
		return false
	}
	for _, f := range fields {
		if len(f) != 4 || (!strings.HasPrefix(f, "19") && !strings.HasPrefix(f, "20")) {
			return false
		}
	}
	return true
}

func matchVocabulary(text string) []string {
	lower := strings.ToLower(text)
	normalized := " " + normalizeWords(text) + " "

	skills := make([]string, 0)
	for _, skill := range skillVocabulary {
		if symbol, ok := symbolSkills[skill]; ok {
			if strings.Contains(lower, symbol) {
				skills = append(skills, skill)
			}
			continue
		}
		phrase := normalizeWords(skill)
		if phrase != "" && strings.Contains(normalized, " "+phrase+" ") {
			skills = append(skills, skill)
		}
	}
	return skills
}

func normalizeWords(s string) string {
	return strings.Join(strings.Fields(nonWordRe.ReplaceAllString(strings.ToLower(s), " ")), " ")
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
