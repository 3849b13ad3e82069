package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/profile"
	"go.uber.org/zap"
)

// DefaultJobLimit caps the postings requested from the job source.
const DefaultJobLimit = 20

// ProfileExtractor turns resume text into a profile without failing.
type ProfileExtractor interface {
	Extract(ctx context.Context, text string) profile.CandidateProfile
}

// SourceMetadata describes the job-source call behind an envelope.
type SourceMetadata struct {
	Source    string `json:"source"`
	Query     string `json:"query"`
	Fetched   int    `json:"fetched"`
	Scored    int    `json:"scored"`
	RequestID string `json:"requestId"`
}

// Envelope is the result of GetRecommendations. On failure Success is false,
// Error is set and the recommendation fields are empty.
type Envelope struct {
	Success          bool                   `json:"success"`
	Error            string                 `json:"error,omitempty"`
	Analysis         Analysis               `json:"analysis"`
	Keywords         []string               `json:"keywords"`
	Jobs             []matching.MatchResult `json:"jobs"`
	AverageRelevance float64                `json:"averageRelevance"`
	Source           SourceMetadata         `json:"source"`
	Timestamp        time.Time              `json:"timestamp"`
}

type OrchestratorOptions struct {
	// SourceName is reported in the envelope metadata.
	SourceName string
	JobLimit   int
}

// Orchestrator runs the full resume to recommendations flow.
type Orchestrator struct {
	extractor ProfileExtractor
	source    jobs.Corpus
	engine    *matching.Engine
	opts      OrchestratorOptions
	logger    *zap.Logger
	now       func() time.Time
}

func NewOrchestrator(extractor ProfileExtractor, source jobs.Corpus, engine *matching.Engine, opts OrchestratorOptions, log *zap.Logger) *Orchestrator {
	if opts.JobLimit <= 0 {
		opts.JobLimit = DefaultJobLimit
	}
	return &Orchestrator{
		extractor: extractor,
		source:    source,
		engine:    engine,
		opts:      opts,
		logger:    logger.OrNop(log),
		now:       time.Now,
	}
}

// GetRecommendations never panics or fails; every problem is reported in the
// returned envelope.
func (o *Orchestrator) GetRecommendations(ctx context.Context, resumeText, desiredRole string) (env Envelope) {
	requestID := uuid.New().String()
	log := o.logger.With(zap.String("request_id", requestID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("recommendation panicked", zap.Any("panic", r))
			env = o.failure(requestID, fmt.Errorf("internal error: %v", r))
		}
	}()

	env, err := o.run(ctx, log, requestID, resumeText, desiredRole)
	if err != nil {
		log.Warn("recommendation failed", zap.Error(err))
		return o.failure(requestID, err)
	}
	return env
}

func (o *Orchestrator) run(ctx context.Context, log *zap.Logger, requestID, text, desiredRole string) (Envelope, error) {
	if err := ValidateResumeText(text); err != nil {
		return Envelope{}, err
	}

	p := o.extractor.Extract(ctx, text)
	analysis := analyze(text, desiredRole, p)
	keywords := Keywords(analysis.Role, p.Skills, analysis.Industry)

	query := jobs.Query{
		Keywords: keywords,
		Skills:   analysis.TopSkills,
		Location: p.Location.City,
		Limit:    o.opts.JobLimit,
	}
	found, err := o.source.Search(ctx, query)
	if err != nil {
		return Envelope{}, fmt.Errorf("job source: %w", err)
	}

	// Score with the same experience the analysis reports.
	years := analysis.ExperienceYears
	scoring := p
	scoring.TotalExperienceYears = &years

	scored := make([]matching.MatchResult, 0, len(found))
	total := 0
	for _, job := range found {
		r := o.engine.ScoreJob(scoring, job, matching.ModeListRanking)
		total += r.OverallScore
		scored = append(scored, r)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})

	env := Envelope{
		Success:          true,
		Analysis:         analysis,
		Keywords:         keywords,
		Jobs:             scored,
		AverageRelevance: average(total, len(scored)),
		Source: SourceMetadata{
			Source:    o.opts.SourceName,
			Query:     strings.Join(keywords, ", "),
			Fetched:   len(found),
			Scored:    len(scored),
			RequestID: requestID,
		},
		Timestamp: o.now().UTC(),
	}

	log.Info("recommendations ready",
		zap.String("role", analysis.Role),
		zap.String("level", analysis.ExperienceLevel),
		zap.String(logger.FieldTier, analysis.Tier),
		zap.Int("fetched", env.Source.Fetched),
		zap.Float64("average_relevance", env.AverageRelevance),
	)
	return env, nil
}

func (o *Orchestrator) failure(requestID string, err error) Envelope {
	return Envelope{
		Success:  false,
		Error:    err.Error(),
		Keywords: []string{},
		Jobs:     []matching.MatchResult{},
		Source: SourceMetadata{
			Source:    o.opts.SourceName,
			RequestID: requestID,
		},
		Timestamp: o.now().UTC(),
	}
}

// average is rounded to one decimal; an empty set averages to zero.
func average(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(n)*10) / 10
}
