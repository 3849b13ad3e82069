package filtering

import (
	"context"
	"fmt"

	"github.com/spigell/resume-matcher/internal/jobs"
	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to jobs before scoring.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, list []jobs.Job) ([]jobs.Job, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	// Employers are excluded company names or ids, compared case-insensitively.
	Employers   []string
	ExcludeFile string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Filter names.
const (
	StatusFilterName      = "status"
	EmployersFilterName   = "employers"
	ExcludeFileFilterName = "exclude_file"
)

// Default returns the standard pre-scoring pipeline.
func Default() []Filter {
	return []Filter{NewStatus(), NewEmployers(), NewExcludeFile()}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns the jobs left.
// The input slice is not modified.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, list []jobs.Job) ([]jobs.Job, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, list)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		list = next
	}

	return list, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// keep returns the jobs for which pred holds, plus the ids of dropped ones.
func keep(list []jobs.Job, pred func(jobs.Job) bool) ([]jobs.Job, []string) {
	out := make([]jobs.Job, 0, len(list))
	var dropped []string
	for _, job := range list {
		if pred(job) {
			out = append(out, job)
			continue
		}
		dropped = append(dropped, job.ID)
	}
	return out, dropped
}
