// Package recommend scores a candidate against jobs and returns the ranked shortlist.
package recommend

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/filtering"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/logger"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/match"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/portal"
	"github.com/sayma-sultana-isra/Ogrojatra-sub001/internal/utils"
)

const previewLength = 60

// Deps aggregates what a recommendation run needs.
type Deps struct {
	Scorer  *match.Scorer
	Logger  *zap.Logger
	Filters []filtering.Filter
}

type Options struct {
	// Limit caps the number of returned jobs. Zero means no cap.
	Limit int
}

// Score returns a new list with every job carrying its match result.
// The input list and its jobs are left untouched.
func Score(ctx context.Context, scorer *match.Scorer, profile *portal.Profile, jobs *portal.Jobs) (*portal.Jobs, error) {
	if scorer == nil {
		scorer = match.NewScorer()
	}

	candidate := profile.Candidate()
	scored := &portal.Jobs{Items: make([]*portal.Job, 0, jobs.Len())}

	for _, job := range jobs.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scored.Items = append(scored.Items, job.Scored(scorer.Score(candidate, job.Posting())))
	}

	return scored, nil
}

// Recommend scores, filters and ranks jobs for the profile.
func Recommend(ctx context.Context, deps Deps, opts Options, profile *portal.Profile, jobs *portal.Jobs) (*portal.Jobs, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}
	if jobs == nil {
		jobs = &portal.Jobs{}
	}

	log := logger.OrNop(deps.Logger).With(zap.String(logger.FieldProfileID, profile.ID))

	scored, err := Score(ctx, deps.Scorer, profile, jobs)
	if err != nil {
		return nil, err
	}

	log.Debug("scored jobs", zap.Int("count", scored.Len()))

	filtered, err := filtering.Run(ctx, log, deps.Filters, scored)
	if err != nil {
		return nil, err
	}

	ranked := &portal.Jobs{Items: match.RankByScore(filtered.Items)}
	if opts.Limit > 0 && ranked.Len() > opts.Limit {
		ranked.Items = ranked.Items[:opts.Limit]
	}

	for i, job := range ranked.Items {
		log.Debug("recommendation",
			zap.Int("rank", i+1),
			zap.String(logger.FieldJobID, job.ID),
			zap.String("title", utils.TruncateForLog(job.Title, previewLength)),
			zap.Int("match_score", job.MatchScoreValue()),
		)
	}

	log.Info("recommendations ready",
		zap.Int("jobs", jobs.Len()),
		zap.Int("recommended", ranked.Len()),
	)

	return ranked, nil
}
