package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume] --job posting.json",
	Short: "Score a resume against a single job posting",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := setup()

		jobFile, _ := cmd.Flags().GetString("job")
		job, err := readJob(jobFile)
		if err != nil {
			logger.Fatal("reading job posting", zap.Error(err))
		}

		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, err := matching.ParseMode(modeFlag)
		if err != nil {
			logger.Fatal("parsing mode", zap.Error(err))
		}

		text, err := readResume(ctx, cmd, args, config, logger)
		if err != nil {
			logger.Fatal("extracting resume text", zap.Error(err))
		}

		p := newExtractor(ctx, config, logger).Extract(ctx, text)
		engine := newEngine(config)

		var result any
		if mode == matching.ModeSingleJob {
			result = engine.AnalyzeJob(p, job)
		} else {
			result = engine.ScoreJob(p, job, mode)
		}

		if err := printJSON(result); err != nil {
			logger.Fatal("printing result", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	addResumeFlags(scoreCmd)
	scoreCmd.Flags().String("job", "", "a JSON file with one job posting")
	scoreCmd.Flags().String("mode", matching.ModeSingleJob.String(), "scoring mode: single-job or list-ranking")
	scoreCmd.MarkFlagRequired("job")
}

func readJob(path string) (jobs.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return jobs.Job{}, fmt.Errorf("read job file: %w", err)
	}

	var job jobs.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return jobs.Job{}, fmt.Errorf("decode job file %s: %w", path, err)
	}
	return job, nil
}
