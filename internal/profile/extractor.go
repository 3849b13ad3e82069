package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/logger"
	"go.uber.org/zap"
)

// AIConfidence is the confidence reported for profiles produced by the model.
const AIConfidence = 0.9

const (
	defaultTemperature     = 0.1
	defaultMaxOutputTokens = 2048
)

var errAIDisabled = errors.New("ai extraction is disabled")

// Options tune the AI tier of an Extractor.
type Options struct {
	Temperature     float32
	MaxOutputTokens int
	MaxPromptChars  int
}

// Extractor produces a CandidateProfile with the model first and local
// heuristics as the fallback. It holds no per-request state.
type Extractor struct {
	completer ai.Completer
	opts      Options
	logger    *zap.Logger
}

// NewExtractor builds an Extractor. A nil completer disables the AI tier.
func NewExtractor(completer ai.Completer, opts Options, log *zap.Logger) *Extractor {
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = defaultMaxOutputTokens
	}
	if opts.MaxPromptChars <= 0 {
		opts.MaxPromptChars = DefaultMaxPromptChars
	}

	return &Extractor{
		completer: completer,
		opts:      opts,
		logger:    logger.OrNop(log),
	}
}

// Extract never fails. Any failure in the AI tier is logged, recorded in the
// profile metadata and replaced by the heuristic result.
func (e *Extractor) Extract(ctx context.Context, text string) CandidateProfile {
	started := time.Now()

	draft, err := e.extractWithAI(ctx, text)
	if err != nil {
		e.logger.Warn("ai extraction unavailable, using heuristics", zap.Error(err))
		draft = Heuristic(text)
		draft.Metadata.Errors = append(draft.Metadata.Errors, fmt.Sprintf("ai tier bypassed: %v", err))
	}

	profile := Clean(draft)

	fields := logger.CoverageFields(profile.Metadata.Tier,
		logger.Coverage{Name: "skills", Count: len(profile.Skills)},
		logger.Coverage{Name: "experience", Count: len(profile.Experience)},
		logger.Coverage{Name: "education", Count: len(profile.Education)},
		logger.Coverage{Name: "projects", Count: len(profile.Projects)},
		logger.Coverage{Name: "certifications", Count: len(profile.Certifications)},
		logger.Coverage{Name: "languages", Count: len(profile.Languages)},
	)
	fields = append(fields,
		zap.Float64("confidence", profile.Metadata.Confidence),
		zap.Int("validation_errors", len(profile.Metadata.Errors)),
		zap.Duration("elapsed", time.Since(started)),
	)
	e.logger.Info("profile extraction finished", fields...)

	return profile
}

func (e *Extractor) extractWithAI(ctx context.Context, text string) (draft CandidateProfile, err error) {
	if e.completer == nil {
		return CandidateProfile{}, errAIDisabled
	}

	defer func() {
		if r := recover(); r != nil {
			draft, err = CandidateProfile{}, fmt.Errorf("ai tier panicked: %v", r)
		}
	}()

	raw, err := e.completer.Complete(ctx, ai.CompletionRequest{
		Prompt:          buildPrompt(text, e.opts.MaxPromptChars),
		Temperature:     e.opts.Temperature,
		MaxOutputTokens: e.opts.MaxOutputTokens,
	})
	if err != nil {
		return CandidateProfile{}, err
	}

	data, err := ai.DecodeJSONObject(raw)
	if err != nil {
		return CandidateProfile{}, err
	}

	draft, decodeErr := decodeDraft(data)
	draft.Metadata = Metadata{
		Tier:       TierAI,
		Model:      e.completer.Model(),
		Confidence: AIConfidence,
	}
	if decodeErr != nil {
		e.logger.Debug("partial decode of ai response", zap.Error(decodeErr))
		draft.Metadata.Errors = append(draft.Metadata.Errors, fmt.Sprintf("decode ai response: %v", decodeErr))
	}

	return draft, nil
}
