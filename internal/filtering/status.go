package filtering

import (
	"context"

	"github.com/spigell/resume-matcher/internal/jobs"
	"go.uber.org/zap"
)

type statusFilter struct {
	enabled bool
	reason  string
}

// NewStatus creates a filter that removes closed or archived jobs.
func NewStatus() Filter {
	return &statusFilter{enabled: true}
}

func (f *statusFilter) Name() string { return StatusFilterName }

func (f *statusFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *statusFilter) IsEnabled() bool { return f.enabled }

func (f *statusFilter) Validate(*Config) error { return nil }

func (f *statusFilter) Apply(_ context.Context, deps Deps, list []jobs.Job) ([]jobs.Job, Step, error) {
	out, dropped := keep(list, jobs.Job.Active)
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding inactive jobs",
			zap.Strings("excluded_jobs", dropped),
			zap.Int("jobs_left", len(out)),
		)
	}
	return out, Step{Initial: len(list), Dropped: len(dropped), Left: len(out)}, nil
}

func (f *statusFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}
