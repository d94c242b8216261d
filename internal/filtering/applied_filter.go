package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/logger"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/portal"
)

const includeFlagSetMsg = "include-applied flag is set"

type appliedFilter struct {
	toggle
	profile *portal.Profile
	ignore  bool
	logger  *zap.Logger
}

type AppliedConfig struct {
	Ignore bool
}

// NewApplied creates a filter that removes jobs the candidate already applied to.
func NewApplied(cfg *AppliedConfig, profile *portal.Profile, log *zap.Logger) Filter {
	ignore := false
	if cfg != nil {
		ignore = cfg.Ignore
	}

	return &appliedFilter{
		profile: profile,
		ignore:  ignore,
		logger:  logger.OrNop(log),
	}
}

func (f *appliedFilter) Name() string { return "applied" }

func (f *appliedFilter) Validate() error {
	if f.profile == nil {
		return fmt.Errorf("profile is required")
	}
	return nil
}

func (f *appliedFilter) Apply(_ context.Context, jobs *portal.Jobs) (*portal.Jobs, Step, error) {
	initial := jobs.Len()
	if f.ignore {
		f.logger.Info("keeping already applied jobs", zap.String("reason", includeFlagSetMsg))
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	excluded := jobs.Exclude(portal.JobIDField, f.profile.AppliedJobs)
	if len(excluded) > 0 {
		f.logger.Info("excluding jobs already applied to",
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *appliedFilter) Status() Status {
	details := map[string]string{
		"exclude_applied": strconv.FormatBool(!f.ignore),
	}
	reason := f.reason
	if f.ignore && reason == "" {
		reason = "skip requested via flag"
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: reason, Details: details}
}
