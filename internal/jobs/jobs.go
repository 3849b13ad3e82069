// Package jobs defines job postings and the corpora they are read from.
// Postings are consumed read-only.
package jobs

import (
	"context"
	"strings"
)

// Job statuses. An empty status counts as active.
const (
	StatusActive = "active"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Job is a posting as seen by the matcher.
type Job struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Company        string          `json:"company,omitempty"`
	Location       string          `json:"location,omitempty"`
	URL            string          `json:"url,omitempty"`
	RequiredSkills []string        `json:"requiredSkills"`
	Experience     ExperienceRange `json:"experience"`
	Status         string          `json:"status,omitempty"`
}

// ExperienceRange holds required years; nil bounds are unspecified.
type ExperienceRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// Specified reports whether either bound is set.
func (r ExperienceRange) Specified() bool {
	return r.Min != nil || r.Max != nil
}

// Active reports whether the posting is still open for applications.
func (j Job) Active() bool {
	switch strings.ToLower(strings.TrimSpace(j.Status)) {
	case "", StatusActive, StatusOpen:
		return true
	default:
		return false
	}
}

// Query narrows a corpus search.
type Query struct {
	// Keywords feed free-text search on external sources.
	Keywords []string
	// Skills are matched against requiredSkills by substring containment.
	Skills   []string
	Title    string
	Location string
	Limit    int
}

// Corpus is a searchable set of postings.
type Corpus interface {
	Search(ctx context.Context, q Query) ([]Job, error)
}
