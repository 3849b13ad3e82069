package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume]",
	Short: "Print the plain text of a PDF, DOCX, DOC or TXT resume",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := setup()

		text, err := readResume(ctx, cmd, args, config, logger)
		if err != nil {
			logger.Fatal("extracting resume text", zap.Error(err))
		}

		fmt.Println(text)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile [resume]",
	Short: "Extract a structured candidate profile from a resume",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := setup()

		text, err := readResume(ctx, cmd, args, config, logger)
		if err != nil {
			logger.Fatal("extracting resume text", zap.Error(err))
		}

		p := newExtractor(ctx, config, logger).Extract(ctx, text)
		if err := printJSON(p); err != nil {
			logger.Fatal("printing profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(profileCmd)

	addResumeFlags(extractCmd)
	addResumeFlags(profileCmd)
}
