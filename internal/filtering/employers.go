package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/jobs"
)

type employersFilter struct {
	employers map[string]struct{}
	names     []string
}

// NewEmployers creates a filter that removes jobs by employers configured in the config.
func NewEmployers() Filter {
	return &employersFilter{}
}

func (f *employersFilter) Name() string { return EmployersFilterName }

func (f *employersFilter) Disable(string) {}

func (f *employersFilter) IsEnabled() bool { return true }

func (f *employersFilter) Validate(cfg *Config) error {
	f.employers = make(map[string]struct{})
	f.names = nil
	if cfg == nil {
		return nil
	}
	for _, e := range cfg.Employers {
		key := strings.ToLower(strings.TrimSpace(e))
		if key == "" {
			continue
		}
		f.employers[key] = struct{}{}
		f.names = append(f.names, strings.TrimSpace(e))
	}
	return nil
}

func (f *employersFilter) Apply(_ context.Context, deps Deps, list []jobs.Job) ([]jobs.Job, Step, error) {
	if len(f.employers) == 0 {
		return list, Step{Initial: len(list), Dropped: 0, Left: len(list)}, nil
	}

	out, dropped := keep(list, func(j jobs.Job) bool {
		_, excluded := f.employers[strings.ToLower(strings.TrimSpace(j.Company))]
		return !excluded
	})
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding jobs by employers",
			zap.Strings("excluded_employers", f.names),
			zap.Strings("excluded_jobs", dropped),
			zap.Int("jobs_left", len(out)),
		)
	}

	return out, Step{Initial: len(list), Dropped: len(dropped), Left: len(out)}, nil
}

func (f *employersFilter) Status() Status {
	details := map[string]string{}
	if len(f.names) > 0 {
		details["employers"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
