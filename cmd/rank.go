package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/recommend"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptExit                = "exit"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
)

var rankCmd = &cobra.Command{
	Use:   "rank [resume]",
	Short: "Rank jobs from the configured corpus for a resume",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	addResumeFlags(rankCmd)
	rankCmd.Flags().IntP("limit", "l", matching.DefaultLimit, "maximum number of ranked jobs")
	rankCmd.Flags().BoolP("interactive", "i", false, "browse results and manage the exclude file")
	rankCmd.Flags().Bool("include-closed", false, "keep jobs that are no longer active")
}

func rank(cmd *cobra.Command, args []string) {
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

	filterCfg, steps := newFilters(config)
	if includeClosed, _ := cmd.Flags().GetBool("include-closed"); includeClosed {
		filtering.DisableByName(steps, filtering.StatusFilterName, "--include-closed is set")
	}
	for _, s := range filtering.Describe(steps) {
		logger.Debug("filter", zap.String("name", s.Name), zap.Bool("enabled", s.Enabled), zap.String("reason", s.Reason))
	}

	p := newExtractor(ctx, config, logger).Extract(ctx, text)
	limit, _ := cmd.Flags().GetInt("limit")

	service := recommend.NewService(corpus, newEngine(config), filterCfg, steps, logger)
	result, err := service.Rank(ctx, p, limit)
	if err != nil {
		logger.Fatal("ranking jobs", zap.Error(err))
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive || len(result.Results) == 0 {
		if err := printJSON(result); err != nil {
			logger.Fatal("printing result", zap.Error(err))
		}
		return
	}

	if err := browse(logger, filterCfg.ExcludeFile, result.Results); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

// browse lets the user inspect ranked jobs one by one.
func browse(logger *zap.Logger, excludeFile string, results []matching.MatchResult) error {
	for {
		items := make([]string, 0, len(results)+2)
		for _, r := range results {
			items = append(items, resultLabel(r))
		}

		if excludeFile != "" && len(results) != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		resultPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptExit),
			Size:  10,
		}

		_, selected, err := resultPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		switch selected {
		case PromptExit:
			return nil
		case PromptAppendToExcludeFile:
			list := make([]jobs.Job, 0, len(results))
			for _, r := range results {
				list = append(list, r.Job)
			}
			if err := appendToExcludeFile(excludeFile, list); err != nil {
				return err
			}

			logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", len(list)))
			results = nil
		default:
			jobID := strings.Split(selected, " ")[0]
			r := findResult(results, jobID)
			if r == nil {
				return fmt.Errorf("there is no such job id %s", jobID)
			}
			if err := printJSON(r); err != nil {
				return err
			}
		}
	}
}

func resultLabel(r matching.MatchResult) string {
	return fmt.Sprintf("%s %s / %s / %d %s",
		r.Job.ID, r.Job.Title, r.Job.Company, r.OverallScore, r.Rating,
	)
}

func findResult(results []matching.MatchResult, id string) *matching.MatchResult {
	for i := range results {
		if results[i].Job.ID == id {
			return &results[i]
		}
	}
	return nil
}

func appendToExcludeFile(path string, list []jobs.Job) error {
	excluded, err := filtering.LoadExcluded(path)
	if errors.Is(err, os.ErrNotExist) {
		excluded, err = &filtering.ExcludedJobs{}, nil
	}
	if err != nil {
		return err
	}

	excluded.Append(filtering.ExcludeJobs(list...))
	return excluded.ToFile(path)
}
