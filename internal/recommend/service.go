// Package recommend turns a resume into ranked job recommendations.
package recommend

import (
	"context"
	"fmt"

	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/profile"
	"go.uber.org/zap"
)

// OverfetchFactor widens corpus queries to make up for the coarse pre-filter.
const OverfetchFactor = 3

// Service ranks corpus postings for a stored profile.
type Service struct {
	corpus    jobs.Corpus
	engine    *matching.Engine
	filterCfg *filtering.Config
	filters   []filtering.Filter
	logger    *zap.Logger
}

// NewService builds a Service. Nil filters run no filtering step.
func NewService(corpus jobs.Corpus, engine *matching.Engine, filterCfg *filtering.Config, filters []filtering.Filter, log *zap.Logger) *Service {
	if filterCfg == nil {
		filterCfg = &filtering.Config{}
	}
	return &Service{
		corpus:    corpus,
		engine:    engine,
		filterCfg: filterCfg,
		filters:   filters,
		logger:    logger.OrNop(log),
	}
}

// Rank queries the corpus by the profile skills, filters the postings and
// ranks them. Only corpus and filter failures are returned.
func (s *Service) Rank(ctx context.Context, p profile.CandidateProfile, limit int) (matching.RankResult, error) {
	if limit <= 0 {
		limit = matching.DefaultLimit
	}
	if len(p.Skills) == 0 {
		return s.engine.RankRecommendations(p, nil, limit), nil
	}

	candidates, err := s.corpus.Search(ctx, jobs.Query{
		Skills: p.Skills,
		Limit:  limit * OverfetchFactor,
	})
	if err != nil {
		return matching.RankResult{}, fmt.Errorf("search jobs: %w", err)
	}

	filtered, err := filtering.Run(ctx, s.filterCfg, filtering.Deps{Logger: s.logger}, s.filters, candidates)
	if err != nil {
		return matching.RankResult{}, fmt.Errorf("filter jobs: %w", err)
	}

	result := s.engine.RankRecommendations(p, filtered, limit)
	s.logger.Info("jobs ranked",
		zap.Int("fetched", len(candidates)),
		zap.Int("filtered", len(filtered)),
		zap.Int("ranked", len(result.Results)),
		zap.Int("score_floor", s.engine.ScoreFloor()),
		zap.String("status", result.Status),
	)
	return result, nil
}
