// Command govinfo fetches document metadata and text from the govInfo API
// and writes CSV/text files to the working directory.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openfederal/govinfo-client/pkg/client"
	"github.com/openfederal/govinfo-client/pkg/govinfo"
	"github.com/openfederal/govinfo-client/pkg/logging"
)

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	APIKey            string  `yaml:"api_key"`
	BaseURL           string  `yaml:"base_url"`
	RedisAddr         string  `yaml:"redis_addr"`
	PageSize          int     `yaml:"page_size"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	MaxPages          int     `yaml:"max_pages"`
}

// flags shared across subcommands.
var (
	flagAPIKey   string
	flagBaseURL  string
	flagConfig   string
	flagRedis    string
	flagLogLevel string
	flagPretty   bool
	flagMaxPages int
	flagPageSize int
)

var rootCmd = &cobra.Command{
	Use:          "govinfo",
	Short:        "Fetch collections, packages, and document text from the govInfo API",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(logging.Config{
			Level:  logging.LogLevel(flagLogLevel),
			Pretty: flagPretty,
			Output: os.Stderr,
		})
		return nil
	},
}

func init() {
	// .env is a convenience for local use; absence is not an error
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "api.data.gov API key (env: GOVINFO_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "govInfo API base URL")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagRedis, "redis", "", "redis address for response caching (empty disables)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagPretty, "pretty", false, "human-readable log output")
	rootCmd.PersistentFlags().IntVar(&flagMaxPages, "max-pages", 0, "cap on pages followed per fetch (0 = unlimited)")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", govinfo.DefaultPageSize, "records per page")

	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(publishedCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(granulesCmd)
	rootCmd.AddCommand(granuleCmd)
	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(downloadCmd)
}

// loadFileConfig reads an optional YAML config file.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// resolveConfig merges config sources: flags win over the config file,
// which wins over environment variables.
func resolveConfig() (client.Config, *fileConfig, error) {
	fileCfg := &fileConfig{}
	if flagConfig != "" {
		loaded, err := loadFileConfig(flagConfig)
		if err != nil {
			return client.Config{}, nil, err
		}
		fileCfg = loaded
	}

	apiKey := os.Getenv("GOVINFO_API_KEY")
	if fileCfg.APIKey != "" {
		apiKey = fileCfg.APIKey
	}
	if flagAPIKey != "" {
		apiKey = flagAPIKey
	}
	if apiKey == "" {
		return client.Config{}, nil, fmt.Errorf("api key required: set --api-key, GOVINFO_API_KEY, or api_key in the config file")
	}

	cfg := client.DefaultConfig(apiKey)

	if fileCfg.BaseURL != "" {
		cfg.BaseURL = fileCfg.BaseURL
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if fileCfg.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = fileCfg.RequestsPerSecond
	}

	redisAddr := fileCfg.RedisAddr
	if flagRedis != "" {
		redisAddr = flagRedis
	}
	if redisAddr != "" {
		cfg.Redis = redis.NewClient(&redis.Options{Addr: redisAddr})
	}

	return cfg, fileCfg, nil
}

// newService builds the client and service from resolved configuration.
// The returned page size honors the flag, then the config file, then the
// package default.
func newService() (*govinfo.Service, int, func(), error) {
	cfg, fileCfg, err := resolveConfig()
	if err != nil {
		return nil, 0, nil, err
	}

	c, err := client.New(cfg)
	if err != nil {
		return nil, 0, nil, err
	}

	svc := govinfo.NewService(c)

	maxPages := fileCfg.MaxPages
	if flagMaxPages > 0 {
		maxPages = flagMaxPages
	}
	if maxPages > 0 {
		svc.SetMaxPages(maxPages)
	}

	pageSize := flagPageSize
	if fileCfg.PageSize > 0 && flagPageSize == govinfo.DefaultPageSize {
		pageSize = fileCfg.PageSize
	}

	cleanup := func() {
		c.Close()
		if cfg.Redis != nil {
			cfg.Redis.Close()
		}
	}

	return svc, pageSize, cleanup, nil
}

func main() {
	start := time.Now()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "govinfo: %v (after %s)\n", err, time.Since(start).Round(time.Millisecond))
		os.Exit(1)
	}
}
