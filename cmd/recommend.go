package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/resume-matcher/internal/headhunter"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/recommend"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	sourceHeadhunter = "hh"
	sourceCorpus     = "corpus"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [resume]",
	Short: "Analyse a resume and fetch scored recommendations from a job source",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := setup()

		text, err := readResume(ctx, cmd, args, config, logger)
		if err != nil {
			logger.Fatal("extracting resume text", zap.Error(err))
		}

		from, _ := cmd.Flags().GetString("source")
		source, name, closeSource, err := newRecommendSource(ctx, from, config, logger)
		if err != nil {
			logger.Fatal("preparing job source", zap.Error(err))
		}
		defer closeSource()

		limit := 0
		if config.Source != nil {
			limit = config.Source.Limit
		}

		orchestrator := recommend.NewOrchestrator(
			newExtractor(ctx, config, logger),
			source,
			newEngine(config),
			recommend.OrchestratorOptions{SourceName: name, JobLimit: limit},
			logger,
		)

		role, _ := cmd.Flags().GetString("role")
		envelope := orchestrator.GetRecommendations(ctx, text, role)
		if err := printJSON(envelope); err != nil {
			logger.Fatal("printing recommendations", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	addResumeFlags(recommendCmd)
	recommendCmd.Flags().StringP("role", "r", "", "desired role (defaults to the current role on the resume)")
	recommendCmd.Flags().String("source", sourceHeadhunter, "job source: hh or corpus")
}

func newRecommendSource(ctx context.Context, from string, config *Config, logger *zap.Logger) (jobs.Corpus, string, func(), error) {
	switch strings.ToLower(strings.TrimSpace(from)) {
	case sourceHeadhunter, "":
		source, err := newJobSource(config, logger)
		if err != nil {
			return nil, "", nil, err
		}
		return source, headhunter.SourceName, func() {}, nil
	case sourceCorpus:
		corpus, closeCorpus, err := newCorpus(ctx, config, logger)
		if err != nil {
			return nil, "", nil, err
		}
		return corpus, sourceCorpus, closeCorpus, nil
	default:
		return nil, "", nil, fmt.Errorf("unknown job source %q", from)
	}
}
