package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "resume-matcher"
	envPrefix = "RESUME_MATCHER"
)

type Config struct {
	AI       *AIConfig       `mapstructure:"ai"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Jobs     *JobsConfig     `mapstructure:"jobs"`
	Source   *SourceConfig   `mapstructure:"source"`
	Filters  *FiltersConfig  `mapstructure:"filters"`
	Storage  *StorageConfig  `mapstructure:"storage"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey          string        `mapstructure:"api-key"`
	APIKeyFile      string        `mapstructure:"api-key-file"`
	Model           string        `mapstructure:"model"`
	Temperature     float32       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max-output-tokens"`
	MaxPromptChars  int           `mapstructure:"max-prompt-chars"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxAttempts     int           `mapstructure:"max-attempts"`
	MaxLogLength    int           `mapstructure:"max-log-length"`
}

type MatchingConfig struct {
	RegionalKeywords []string `mapstructure:"regional-keywords"`
	ScoreFloor       int      `mapstructure:"score-floor"`
}

type JobsConfig struct {
	// File is a JSON array of postings. PostgresDSN wins when both are set.
	File        string `mapstructure:"file"`
	PostgresDSN string `mapstructure:"postgres-dsn"`
}

type SourceConfig struct {
	APIURL       string        `mapstructure:"api-url"`
	UserAgent    string        `mapstructure:"user-agent"`
	TokenFile    string        `mapstructure:"token-file"`
	Areas        []int         `mapstructure:"areas"`
	FetchDetails bool          `mapstructure:"fetch-details"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Limit        int           `mapstructure:"limit"`
}

type FiltersConfig struct {
	Employers   []string `mapstructure:"employers"`
	ExcludeFile string   `mapstructure:"exclude-file"`
}

type StorageConfig struct {
	S3 *S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	AccessKey     string `mapstructure:"access-key"`
	SecretKey     string `mapstructure:"secret-key"`
	SecretKeyFile string `mapstructure:"secret-key-file"`
	Bucket        string `mapstructure:"bucket"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher extracts a candidate profile from a resume and matches it against job postings",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults()
}

// setDefaults also registers every key so that AutomaticEnv reaches it on Unmarshal.
func setDefaults() {
	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.api-key", "")
	viper.SetDefault("ai.gemini.api-key-file", "")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.temperature", 0.1)
	viper.SetDefault("ai.gemini.max-output-tokens", 2048)
	viper.SetDefault("ai.gemini.max-prompt-chars", 12000)
	viper.SetDefault("ai.gemini.timeout", 30*time.Second)
	viper.SetDefault("ai.gemini.max-attempts", 1)
	viper.SetDefault("ai.gemini.max-log-length", 500)

	viper.SetDefault("matching.regional-keywords", []string{"remote", "anywhere"})
	viper.SetDefault("matching.score-floor", 40)

	viper.SetDefault("jobs.file", "")
	viper.SetDefault("jobs.postgres-dsn", "")

	viper.SetDefault("source.api-url", "")
	viper.SetDefault("source.user-agent", "")
	viper.SetDefault("source.token-file", "")
	viper.SetDefault("source.areas", []int{})
	viper.SetDefault("source.fetch-details", true)
	viper.SetDefault("source.timeout", 10*time.Second)
	viper.SetDefault("source.limit", 20)

	viper.SetDefault("filters.employers", []string{})
	viper.SetDefault("filters.exclude-file", "")

	viper.SetDefault("storage.s3.endpoint", "")
	viper.SetDefault("storage.s3.region", "auto")
	viper.SetDefault("storage.s3.access-key", "")
	viper.SetDefault("storage.s3.secret-key", "")
	viper.SetDefault("storage.s3.secret-key-file", "")
	viper.SetDefault("storage.s3.bucket", "")
}

func initConfig() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional; an explicit or broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
