package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileCorpus serves postings from a JSON array loaded once at startup.
type FileCorpus struct {
	jobs []Job
}

// LoadFile reads a JSON array of postings.
func LoadFile(path string) (*FileCorpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file %s: %w", path, err)
	}

	var list []Job
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode jobs file %s: %w", path, err)
	}

	return NewFileCorpus(list), nil
}

// NewFileCorpus wraps an in-memory list. The slice is not copied.
func NewFileCorpus(list []Job) *FileCorpus {
	return &FileCorpus{jobs: list}
}

// All returns every loaded posting.
func (c *FileCorpus) All() []Job {
	return c.jobs
}

// Search applies the title filter, then the skill pre-filter when skills are set.
func (c *FileCorpus) Search(ctx context.Context, q Query) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := FilterByTitle(c.jobs, q.Title)
	if len(q.Skills) > 0 {
		return KeywordPrefilter(result, q.Skills, q.Limit), nil
	}
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}
