package profile

import (
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxSkills caps the skills list after cleaning.
	MaxSkills = 50
	// MaxExperienceYears caps totalExperienceYears.
	MaxExperienceYears = 50
	// YearsPerExperienceEntry estimates experience when no total is given.
	// It is a rough approximation, not a calendar computation.
	YearsPerExperienceEntry = 2
)

var (
	validate = validator.New()

	yearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	ongoingRe = regexp.MustCompile(`(?i)\b(present|current|now|ongoing|expected|till date|to date)\b`)
)

type proficiencyAlias struct {
	needle string
	level  string
}

// Order matters: "upper-intermediate" must hit "upper" before "intermediate".
var proficiencyAliases = []proficiencyAlias{
	{"native", ProficiencyNative},
	{"mother tongue", ProficiencyNative},
	{"bilingual", ProficiencyNative},
	{"fluent", ProficiencyFluent},
	{"c2", ProficiencyFluent},
	{"advanced", ProficiencyAdvanced},
	{"upper", ProficiencyAdvanced},
	{"professional", ProficiencyAdvanced},
	{"proficient", ProficiencyAdvanced},
	{"c1", ProficiencyAdvanced},
	{"intermediate", ProficiencyIntermediate},
	{"conversational", ProficiencyIntermediate},
	{"working", ProficiencyIntermediate},
	{"b2", ProficiencyIntermediate},
	{"b1", ProficiencyIntermediate},
	{"basic", ProficiencyBasic},
	{"beginner", ProficiencyBasic},
	{"elementary", ProficiencyBasic},
	{"a2", ProficiencyBasic},
	{"a1", ProficiencyBasic},
}

type cleaner struct {
	errs []string
}

func (c *cleaner) reject(field, value, reason string) {
	err := &ValidationError{Field: field, Value: strings.TrimSpace(value), Reason: reason}
	c.errs = append(c.errs, err.Error())
}

// Clean validates and normalizes a draft profile. It never fails: invalid
// values are nulled or dropped and recorded in Metadata.Errors.
// Clean(Clean(p)) equals Clean(p).
func Clean(p CandidateProfile) CandidateProfile {
	c := &cleaner{}

	out := CandidateProfile{
		Name:           text(p.Name),
		Email:          c.email(p.Email),
		Phone:          text(p.Phone),
		Location:       cleanLocation(p.Location),
		Summary:        text(p.Summary),
		CurrentRole:    text(p.CurrentRole),
		CurrentCompany: text(p.CurrentCompany),
		LinkedIn:       c.link("linkedin", p.LinkedIn, "linkedin.com"),
		GitHub:         c.link("github", p.GitHub, "github.com"),
		Portfolio:      c.link("portfolio", p.Portfolio, ""),
	}

	out.Skills = texts(p.Skills)
	if len(out.Skills) > MaxSkills {
		out.Skills = out.Skills[:MaxSkills]
	}

	out.Experience = make([]Experience, 0, len(p.Experience))
	for _, e := range p.Experience {
		if cleaned, ok := cleanExperience(e); ok {
			out.Experience = append(out.Experience, cleaned)
		}
	}

	out.Education = make([]Education, 0, len(p.Education))
	for _, e := range p.Education {
		if cleaned, ok := cleanEducation(e); ok {
			out.Education = append(out.Education, cleaned)
		}
	}

	out.Projects = make([]Project, 0, len(p.Projects))
	for _, pr := range p.Projects {
		if cleaned, ok := c.project(pr); ok {
			out.Projects = append(out.Projects, cleaned)
		}
	}

	out.Certifications = make([]Certification, 0, len(p.Certifications))
	for _, cert := range p.Certifications {
		if cleaned, ok := cleanCertification(cert); ok {
			out.Certifications = append(out.Certifications, cleaned)
		}
	}

	out.Languages = make([]Language, 0, len(p.Languages))
	for _, l := range p.Languages {
		if cleaned, ok := c.language(l); ok {
			out.Languages = append(out.Languages, cleaned)
		}
	}

	years := c.totalYears(p.TotalExperienceYears, len(out.Experience))
	out.TotalExperienceYears = &years

	if out.CurrentRole == "" || out.CurrentCompany == "" {
		for _, e := range out.Experience {
			if !e.Current {
				continue
			}
			if out.CurrentRole == "" {
				out.CurrentRole = e.JobTitle
			}
			if out.CurrentCompany == "" {
				out.CurrentCompany = e.Company
			}
			break
		}
	}

	out.Metadata = Metadata{
		Tier:       text(p.Metadata.Tier),
		Model:      text(p.Metadata.Model),
		Confidence: clamp01(p.Metadata.Confidence),
		Errors:     unique(append(texts(p.Metadata.Errors), c.errs...)),
	}

	return out
}

func (c *cleaner) email(raw string) string {
	v := strings.TrimSpace(raw)
	v = strings.TrimSpace(strings.TrimPrefix(v, "mailto:"))
	if v == "" {
		return ""
	}
	if err := validate.Var(v, "required,email"); err != nil {
		c.reject("email", raw, "not a valid email address")
		return ""
	}
	return v
}

// link accepts well-formed http(s) URLs; a missing scheme is read as https.
// A non-empty domain must appear in the URL.
func (c *cleaner) link(field, raw, domain string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if !strings.Contains(v, "://") {
		v = "https://" + strings.TrimPrefix(v, "//")
	}

	if err := validate.Var(v, "required,url"); err != nil || !hasDottedHost(v) {
		c.reject(field, raw, "not a well-formed URL")
		return ""
	}
	if domain != "" && !strings.Contains(strings.ToLower(v), domain) {
		c.reject(field, raw, "expected a "+domain+" URL")
		return ""
	}
	return v
}

func hasDottedHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return strings.Contains(host, ".") && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}

func (c *cleaner) totalYears(provided *int, entries int) int {
	if provided != nil {
		if *provided >= 0 {
			return min(*provided, MaxExperienceYears)
		}
		c.reject("totalExperienceYears", "", "negative value replaced by estimate")
	}
	return min(entries*YearsPerExperienceEntry, MaxExperienceYears)
}

func (c *cleaner) project(p Project) (Project, bool) {
	out := Project{
		Title:        text(p.Title),
		Description:  text(p.Description),
		Technologies: texts(p.Technologies),
	}
	if out.Title == "" && out.Description == "" {
		return Project{}, false
	}
	out.URL = c.link("projects.url", p.URL, "")
	out.GitHub = c.link("projects.github", p.GitHub, "github.com")
	return out, true
}

func (c *cleaner) language(l Language) (Language, bool) {
	out := Language{Language: text(l.Language)}
	if out.Language == "" {
		return Language{}, false
	}

	raw := strings.ToLower(strings.TrimSpace(l.Proficiency))
	if raw == "" {
		return out, true
	}
	for _, alias := range proficiencyAliases {
		if strings.Contains(raw, alias.needle) {
			out.Proficiency = alias.level
			return out, true
		}
	}
	c.reject("languages.proficiency", l.Proficiency, "unknown proficiency level")
	return out, true
}

func cleanExperience(e Experience) (Experience, bool) {
	out := Experience{
		JobTitle:         text(e.JobTitle),
		Company:          text(e.Company),
		Location:         text(e.Location),
		StartDate:        text(e.StartDate),
		EndDate:          text(e.EndDate),
		Current:          e.Current,
		Description:      text(e.Description),
		Responsibilities: texts(e.Responsibilities),
		Achievements:     texts(e.Achievements),
	}
	if out.JobTitle == "" && out.Company == "" {
		return Experience{}, false
	}
	if ongoingRe.MatchString(out.EndDate) {
		out.Current = true
	}
	return out, true
}

func cleanEducation(e Education) (Education, bool) {
	out := Education{
		Degree:       text(e.Degree),
		Institution:  text(e.Institution),
		FieldOfStudy: text(e.FieldOfStudy),
		Grade:        text(e.Grade),
		Ongoing:      e.Ongoing,
	}
	if out.Degree == "" && out.Institution == "" {
		return Education{}, false
	}
	if ongoingRe.MatchString(e.EndYear) {
		out.Ongoing = true
	}
	out.StartYear = yearRe.FindString(e.StartYear)
	out.EndYear = yearRe.FindString(e.EndYear)
	return out, true
}

func cleanCertification(c Certification) (Certification, bool) {
	out := Certification{
		Name:         text(c.Name),
		Issuer:       text(c.Issuer),
		IssueDate:    text(c.IssueDate),
		ExpiryDate:   text(c.ExpiryDate),
		CredentialID: text(c.CredentialID),
	}
	if out.Name == "" && out.Issuer == "" {
		return Certification{}, false
	}
	return out, true
}

func cleanLocation(l Location) Location {
	return Location{
		Address:    text(l.Address),
		City:       text(l.City),
		State:      text(l.State),
		Country:    text(l.Country),
		PostalCode: text(l.PostalCode),
	}
}

// text trims s and maps placeholder values to empty.
func text(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "null", "none", "n/a", "undefined":
		return ""
	}
	return s
}

func texts(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = text(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func unique(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
