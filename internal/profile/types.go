// Package profile turns resume text into a cleaned CandidateProfile.
package profile

// Extraction tiers recorded in Metadata.Tier.
const (
	TierAI        = "ai"
	TierHeuristic = "heuristic"
)

// CandidateProfile is the normalized structured view of a resume.
// Empty strings stand for absent values.
type CandidateProfile struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location Location `json:"location"`
	Summary  string   `json:"summary,omitempty"`

	Skills         []string        `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`

	// TotalExperienceYears is nil only before cleaning.
	TotalExperienceYears *int   `json:"totalExperienceYears"`
	CurrentRole          string `json:"currentRole,omitempty"`
	CurrentCompany       string `json:"currentCompany,omitempty"`

	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`

	Metadata Metadata `json:"parsingMetadata" mapstructure:"-"`
}

type Location struct {
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

type Experience struct {
	JobTitle         string   `json:"jobTitle,omitempty"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"startDate,omitempty"`
	EndDate          string   `json:"endDate,omitempty"`
	Current          bool     `json:"current"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

type Education struct {
	Degree       string `json:"degree,omitempty"`
	Institution  string `json:"institution,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartYear    string `json:"startYear,omitempty"`
	EndYear      string `json:"endYear,omitempty"`
	Grade        string `json:"grade,omitempty"`
	Ongoing      bool   `json:"ongoing"`
}

type Project struct {
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	GitHub       string   `json:"github,omitempty"`
}

type Certification struct {
	Name         string `json:"name,omitempty"`
	Issuer       string `json:"issuer,omitempty"`
	IssueDate    string `json:"issueDate,omitempty"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
}

// Language proficiency is one of the Proficiency* constants or empty.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

const (
	ProficiencyBasic        = "basic"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyNative       = "native"
	ProficiencyFluent       = "fluent"
)

// Metadata describes how a profile was produced.
type Metadata struct {
	Tier       string   `json:"tier,omitempty"`
	Model      string   `json:"model,omitempty"`
	Confidence float64  `json:"confidence"`
	Errors     []string `json:"errors"`
}

// ExperienceYears returns the total experience, treating nil as zero.
func (p CandidateProfile) ExperienceYears() int {
	if p.TotalExperienceYears == nil {
		return 0
	}
	return *p.TotalExperienceYears
}
