package headhunter

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/resume-matcher/internal/jobs"
	"go.uber.org/zap"
)

// SourceName identifies hh.ru in recommendation metadata.
const SourceName = "hh.ru"

// experienceRanges maps hh.ru experience ids to year ranges.
var experienceRanges = map[string][2]int{
	"noExperience": {0, 1},
	"between1And3": {1, 3},
	"between3And6": {3, 6},
	"moreThan6":    {6, -1},
}

// Source adapts the vacancies API to jobs.Corpus.
type Source struct {
	client       *Client
	areas        []int
	fetchDetails bool
}

// NewSource builds a job source limited to areas. With fetchDetails set, each
// result is re-read to get its key skills.
func NewSource(client *Client, areas []int, fetchDetails bool) *Source {
	return &Source{client: client, areas: areas, fetchDetails: fetchDetails}
}

var _ jobs.Corpus = (*Source)(nil)

// Search runs a text search built from the query keywords (any of them may
// match) and converts the vacancies to jobs.
func (s *Source) Search(ctx context.Context, q jobs.Query) ([]jobs.Job, error) {
	params := &SearchParams{
		Text:    searchText(q),
		Areas:   s.areas,
		OrderBy: "relevance",
	}

	vacancies, err := s.client.Search(ctx, params, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("search vacancies: %w", err)
	}

	out := make([]jobs.Job, 0, vacancies.Len())
	for _, v := range vacancies.Items {
		if v == nil {
			continue
		}
		if s.fetchDetails && len(v.KeySkills) == 0 {
			full, err := s.client.GetVacancy(ctx, v.ID)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				s.client.logger.Warn("vacancy details unavailable", zap.String("vacancy_id", v.ID), zap.Error(err))
			} else {
				v = full
			}
		}
		out = append(out, ToJob(v))
	}
	return out, nil
}

func searchText(q jobs.Query) string {
	var terms []string
	seen := make(map[string]struct{})
	for _, kw := range append(append([]string{q.Title}, q.Keywords...), q.Skills...) {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if strings.ContainsAny(kw, " \t") {
			kw = `"` + kw + `"`
		}
		terms = append(terms, kw)
	}
	return strings.Join(terms, " OR ")
}

// ToJob converts a vacancy to the job shape used for scoring.
func ToJob(v *Vacancy) jobs.Job {
	job := jobs.Job{
		ID:             v.ID,
		Title:          strings.TrimSpace(v.Name),
		Company:        strings.TrimSpace(v.Employer.Name),
		Location:       strings.TrimSpace(v.Area.Name),
		URL:            v.AlternateURL,
		RequiredSkills: make([]string, 0, len(v.KeySkills)),
		Status:         jobs.StatusActive,
	}
	for _, ks := range v.KeySkills {
		if name := strings.TrimSpace(ks.Name); name != "" {
			job.RequiredSkills = append(job.RequiredSkills, name)
		}
	}
	if r, ok := experienceRanges[v.Experience.ID]; ok {
		minYears := r[0]
		job.Experience.Min = &minYears
		if r[1] >= 0 {
			maxYears := r[1]
			job.Experience.Max = &maxYears
		}
	}
	if v.Archived {
		job.Status = jobs.StatusClosed
	}
	return job
}
