package filtering

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/jobs"
)

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes jobs listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return ExcludeFileFilterName }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, list []jobs.Job) ([]jobs.Job, Step, error) {
	if f.path == "" {
		return list, Step{Initial: len(list), Dropped: 0, Left: len(list)}, nil
	}

	excluded, err := LoadExcluded(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return list, Step{Initial: len(list), Dropped: 0, Left: len(list)}, nil
		}
		return nil, Step{}, fmt.Errorf("getting excluded jobs from file: %w", err)
	}

	ids := make(map[string]struct{}, len(excluded.Items))
	for _, id := range excluded.IDs() {
		ids[id] = struct{}{}
	}

	out, dropped := keep(list, func(j jobs.Job) bool {
		_, skip := ids[j.ID]
		return !skip
	})
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding jobs based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_jobs", dropped),
			zap.Int("jobs_left", len(out)),
		)
	}

	return out, Step{Initial: len(list), Dropped: len(dropped), Left: len(out)}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
