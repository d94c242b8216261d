package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/logger"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/portal"
)

type companiesFilter struct {
	toggle
	companies []string
	logger    *zap.Logger
}

// NewExcludedCompanies creates a filter that removes jobs posted by the given companies.
func NewExcludedCompanies(companies []string, log *zap.Logger) Filter {
	return &companiesFilter{
		companies: companies,
		logger:    logger.OrNop(log),
	}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Validate() error { return nil }

func (f *companiesFilter) Apply(_ context.Context, jobs *portal.Jobs) (*portal.Jobs, Step, error) {
	initial := jobs.Len()
	if len(f.companies) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	excluded := jobs.Exclude(portal.JobCompanyField, f.companies)
	if len(excluded) > 0 {
		f.logger.Info("excluding jobs by companies",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
