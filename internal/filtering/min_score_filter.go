package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/logger"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/match"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/portal"
)

type minScoreFilter struct {
	toggle
	min    int
	logger *zap.Logger
}

// NewMinimumScore creates a filter that drops jobs scoring below minScore.
func NewMinimumScore(minScore int, log *zap.Logger) Filter {
	return &minScoreFilter{min: minScore, logger: logger.OrNop(log)}
}

func (f *minScoreFilter) Name() string { return "minimum_score" }

func (f *minScoreFilter) Validate() error {
	if f.min < 0 || f.min > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %d", f.min)
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, jobs *portal.Jobs) (*portal.Jobs, Step, error) {
	initial := jobs.Len()
	kept := match.FilterByMinimumScore(jobs.Items, f.min)

	if dropped := initial - len(kept); dropped > 0 {
		f.logger.Debug("dropping jobs below minimum score",
			zap.Int("minimum_score", f.min),
			zap.Int("dropped", dropped),
		)
	}

	return &portal.Jobs{Items: kept}, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.min)},
	}
}
