package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/ai/gemini"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/headhunter"
	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/profile"
	"github.com/spigell/resume-matcher/internal/secrets"
	"github.com/spigell/resume-matcher/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// setup builds the logger and reads the config. Both failures are fatal.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	logger.Debug("starting", zap.String("app", app), zap.String("version", version))
	return logger, config
}

func newCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Completer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.ProviderName {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	return gemini.NewGenerator(ctx, apiKey, gemini.Options{
		Model:        cfg.Gemini.Model,
		Timeout:      cfg.Gemini.Timeout,
		MaxAttempts:  cfg.Gemini.MaxAttempts,
		MaxLogLength: cfg.Gemini.MaxLogLength,
	}, logger)
}

// newExtractor never fails: without a usable AI config the extractor runs on
// heuristics only.
func newExtractor(ctx context.Context, config *Config, logger *zap.Logger) *profile.Extractor {
	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("ai tier disabled", zap.Error(err))
		completer = nil
	}

	opts := profile.Options{}
	if config.AI != nil && config.AI.Gemini != nil {
		opts.Temperature = config.AI.Gemini.Temperature
		opts.MaxOutputTokens = config.AI.Gemini.MaxOutputTokens
		opts.MaxPromptChars = config.AI.Gemini.MaxPromptChars
	}
	return profile.NewExtractor(completer, opts, logger)
}

func newEngine(config *Config) *matching.Engine {
	if config.Matching == nil {
		return matching.NewEngine(matching.Options{})
	}
	return matching.NewEngine(matching.Options{
		RegionalKeywords: config.Matching.RegionalKeywords,
		ScoreFloor:       config.Matching.ScoreFloor,
	})
}

// newCorpus opens the configured job corpus. The returned func releases it.
func newCorpus(ctx context.Context, config *Config, logger *zap.Logger) (jobs.Corpus, func(), error) {
	cfg := config.Jobs
	if cfg == nil {
		cfg = &JobsConfig{}
	}

	if dsn := strings.TrimSpace(cfg.PostgresDSN); dsn != "" {
		pool, err := jobs.Connect(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres job corpus")
		return jobs.NewPostgresCorpus(pool), pool.Close, nil
	}

	if file := strings.TrimSpace(cfg.File); file != "" {
		corpus, err := jobs.LoadFile(file)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using file job corpus", zap.String("filename", file), zap.Int("count", len(corpus.All())))
		return corpus, func() {}, nil
	}

	return nil, nil, errors.New("no job corpus configured (set jobs.file or jobs.postgres-dsn)")
}

func newJobSource(config *Config, logger *zap.Logger) (*headhunter.Source, error) {
	cfg := config.Source
	if cfg == nil {
		cfg = &SourceConfig{}
	}

	token, err := secrets.Optional(secrets.Source{
		Name: "headhunter token",
		File: cfg.TokenFile,
		Env:  "HH_TOKEN",
	})
	if err != nil {
		return nil, err
	}

	client := headhunter.New(logger, headhunter.Options{
		APIURL:    cfg.APIURL,
		UserAgent: cfg.UserAgent,
		Token:     token,
		Timeout:   cfg.Timeout,
	})
	return headhunter.NewSource(client, cfg.Areas, cfg.FetchDetails), nil
}

func newFilters(config *Config) (*filtering.Config, []filtering.Filter) {
	cfg := &filtering.Config{}
	if config.Filters != nil {
		cfg.Employers = config.Filters.Employers
		cfg.ExcludeFile = config.Filters.ExcludeFile
	}

	return cfg, filtering.Default()
}

func newStorage(ctx context.Context, config *Config) (*storage.S3Source, error) {
	if config.Storage == nil || config.Storage.S3 == nil {
		return nil, errors.New("storage.s3 is not configured")
	}
	cfg := config.Storage.S3

	secret, err := secrets.Optional(secrets.Source{
		Name:  "s3 secret key",
		File:  cfg.SecretKeyFile,
		Value: cfg.SecretKey,
	})
	if err != nil {
		return nil, err
	}

	return storage.NewS3Source(ctx, storage.Options{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: secret,
		Bucket:    cfg.Bucket,
	})
}

func addResumeFlags(cmd *cobra.Command) {
	cmd.Flags().String("s3-key", "", "read the resume from object storage instead of a local file")
	cmd.Flags().String("mime-type", "", "declared mime type of the resume (detected when empty)")
}

// readResume returns the resume text from the file argument or from object
// storage when --s3-key is set.
func readResume(ctx context.Context, cmd *cobra.Command, args []string, config *Config, l *zap.Logger) (string, error) {
	mimeType, _ := cmd.Flags().GetString("mime-type")
	key, _ := cmd.Flags().GetString("s3-key")

	var (
		data     []byte
		filename string
	)

	switch {
	case key != "":
		source, err := newStorage(ctx, config)
		if err != nil {
			return "", err
		}
		doc, err := source.Fetch(ctx, key)
		if err != nil {
			return "", err
		}
		data, filename = doc.Data, doc.Filename
		if mimeType == "" {
			mimeType = doc.MimeType
		}
	case len(args) > 0:
		var err error
		data, err = os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read resume: %w", err)
		}
		filename = filepath.Base(args[0])
	default:
		return "", errors.New("a resume file argument or --s3-key is required")
	}

	text, err := document.Extract(data, mimeType, filename)
	if err != nil {
		return "", err
	}

	l.Debug("resume text extracted",
		zap.String(logger.FieldFilename, filename),
		zap.Int("characters", len([]rune(text))),
	)
	return text, nil
}
