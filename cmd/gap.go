package cmd

import (
	"context"

	"github.com/spigell/resume-matcher/internal/jobs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultGapSample = 200

var gapCmd = &cobra.Command{
	Use:   "gap [resume]",
	Short: "Report skills demanded by jobs that the resume does not cover",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := setup()

		text, err := readResume(ctx, cmd, args, config, logger)
		if err != nil {
			logger.Fatal("extracting resume text", zap.Error(err))
		}

		corpus, closeCorpus, err := newCorpus(ctx, config, logger)
		if err != nil {
			logger.Fatal("opening job corpus", zap.Error(err))
		}
		defer closeCorpus()

		role, _ := cmd.Flags().GetString("role")
		sample, _ := cmd.Flags().GetInt("sample")

		list, err := corpus.Search(ctx, jobs.Query{Title: role, Limit: sample})
		if err != nil {
			logger.Fatal("searching jobs", zap.Error(err))
		}

		p := newExtractor(ctx, config, logger).Extract(ctx, text)
		report := newEngine(config).AnalyzeSkillsGap(p, list, role)

		logger.Info("skills gap ready",
			zap.String("role", role),
			zap.Int("sample_size", report.SampleSize),
			zap.Int("missing", len(report.MissingSkills)),
		)
		if err := printJSON(report); err != nil {
			logger.Fatal("printing report", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(gapCmd)

	addResumeFlags(gapCmd)
	gapCmd.Flags().StringP("role", "r", "", "only sample jobs whose title contains this role")
	gapCmd.Flags().Int("sample", defaultGapSample, "maximum number of jobs sampled")
}
