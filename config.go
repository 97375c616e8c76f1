package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jinzhu/configor"
	log "github.com/sirupsen/logrus"
)

const (
	defaultConfigFile = "staticsync.yml"
	envPrefix         = "STATICSYNC"
	defaultMaxAge     = 86400
)

type AppConfig struct {
	Dir          string              `yaml:"dir"`
	Bucket       string              `yaml:"bucket"`
	Distribution string              `yaml:"distribution"`
	Provider     string              `yaml:"provider" default:"aws"`
	Region       string              `yaml:"region"`
	Profile      string              `yaml:"profile"`
	Concurrency  int                 `yaml:"concurrency" default:"4"`
	Interval     int                 `yaml:"interval"`
	SNSTopic     string              `yaml:"sns_topic"`
	CacheControl *CacheControlConfig `yaml:"cache_control"`
}

type CacheControlConfig struct {
	Default *int        `yaml:"default"`
	Rules   []CacheRule `yaml:"rules"`
}

// Flags holds command line values. Empty strings and a nil Interval mean
// the flag was not given.
type Flags struct {
	ConfigFile   string
	Dir          string
	Bucket       string
	Distribution string
	DryRun       bool
	Interval     *int
}

// Settings is the validated configuration of a run. It is built once and
// passed around by value.
type Settings struct {
	Dir          string
	Bucket       string
	Distribution string
	Provider     string
	Region       string
	Profile      string
	Concurrency  int
	Interval     time.Duration
	SNSTopic     string
	DryRun       bool
	CachePolicy  *CachePolicy
}

func defaultCacheRules() []CacheRule {
	return []CacheRule{
		{Pattern: `\.(ico|jpg|jpeg|png|gif)$`, MaxAge: 31536000},
		{Pattern: `\.(css|js)$`, MaxAge: 604800},
	}
}

func defaultConfiguration() string {
	return `cache_control: # set max-age
  default: 86400 # a day
  rules:
    - pattern: '\.(ico|jpg|jpeg|png|gif)$'
      max_age: 31536000 # 365 days
    - pattern: '\.(css|js)$'
      max_age: 604800 # a week
`
}

// printDefaultConfiguration writes a starting config file, seeded with any
// locations already given on the command line.
func printDefaultConfiguration(flags Flags) string {
	out := ""
	if flags.Dir != "" {
		out += fmt.Sprintf("dir: '%s'\n", flags.Dir)
	}
	if flags.Bucket != "" {
		out += fmt.Sprintf("bucket: '%s'\n", flags.Bucket)
	}
	if flags.Distribution != "" {
		out += fmt.Sprintf("distribution: '%s'\n", flags.Distribution)
	}
	return out + defaultConfiguration()
}

// loadAppConfig reads configFile when present. Environment variables
// prefixed with STATICSYNC_ override file values.
func loadAppConfig(configFile string) (AppConfig, error) {
	var appConfig AppConfig
	files := make([]string, 0, 1)
	if configFile != "" {
		files = append(files, configFile)
	}

	loader := configor.New(&configor.Config{ENVPrefix: envPrefix})
	if err := loader.Load(&appConfig, files...); err != nil {
		return appConfig, fmt.Errorf("loading %s: %w", configFile, err)
	}
	return appConfig, nil
}

// loadSettings falls back to the built-in defaults when the default config
// file is absent. An explicit --config must exist.
func loadSettings(flags Flags) (Settings, error) {
	configFile := flags.ConfigFile
	if configFile == "" {
		configFile = defaultConfigFile
		if _, statErr := os.Stat(configFile); statErr != nil {
			configFile = ""
		}
	} else if _, statErr := os.Stat(configFile); statErr != nil {
		return Settings{}, fmt.Errorf("config file: %w", statErr)
	}

	appConfig, err := loadAppConfig(configFile)
	if err != nil {
		return Settings{}, err
	}
	return buildSettings(appConfig, flags)
}

// buildSettings merges flags over the file config and validates the result.
// Missing directory and bucket are reported together.
func buildSettings(appConfig AppConfig, flags Flags) (Settings, error) {
	if flags.Dir != "" {
		appConfig.Dir = flags.Dir
	}
	if flags.Bucket != "" {
		appConfig.Bucket = flags.Bucket
	}
	if flags.Distribution != "" {
		appConfig.Distribution = flags.Distribution
	}
	if flags.Interval != nil {
		appConfig.Interval = *flags.Interval
	}

	var missing []error
	if appConfig.Dir == "" {
		missing = append(missing, errors.New("directory to upload was not specified, use either the -d flag or 'dir:' in the configuration file"))
	}
	if appConfig.Bucket == "" {
		missing = append(missing, errors.New("bucket to upload to was not specified, use either the -b flag or 'bucket:' in the configuration file"))
	}
	if len(missing) > 0 {
		return Settings{}, errors.Join(missing...)
	}

	if appConfig.Distribution == "" {
		log.Warn("No distribution ID specified, CloudFront invalidation is disabled")
	}

	cacheConfig := appConfig.CacheControl
	if cacheConfig == nil {
		maxAge := defaultMaxAge
		cacheConfig = &CacheControlConfig{Default: &maxAge, Rules: defaultCacheRules()}
	}
	if cacheConfig.Default == nil {
		return Settings{}, errors.New("cache_control is set but has no default max-age, run with -p to print the default configuration")
	}
	policy, policyErr := NewCachePolicy(cacheConfig.Rules, *cacheConfig.Default)
	if policyErr != nil {
		return Settings{}, policyErr
	}

	if appConfig.Provider == "" {
		appConfig.Provider = "aws"
	}
	switch appConfig.Provider {
	case "aws", "gcs":
	default:
		return Settings{}, fmt.Errorf("unknown storage provider: %s", appConfig.Provider)
	}

	info, statErr := os.Stat(appConfig.Dir)
	if statErr != nil || !info.IsDir() {
		return Settings{}, fmt.Errorf("given directory (%s) is not a directory", appConfig.Dir)
	}

	concurrency := appConfig.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return Settings{
		Dir:          appConfig.Dir,
		Bucket:       appConfig.Bucket,
		Distribution: appConfig.Distribution,
		Provider:     appConfig.Provider,
		Region:       appConfig.Region,
		Profile:      appConfig.Profile,
		Concurrency:  concurrency,
		Interval:     time.Duration(appConfig.Interval) * time.Second,
		SNSTopic:     appConfig.SNSTopic,
		DryRun:       flags.DryRun,
		CachePolicy:  policy,
	}, nil
}

// ClientFromSettings picks the bucket client for the configured provider.
func (s Settings) ClientFromSettings(ctx context.Context) (BucketClient, error) {
	switch s.Provider {
	case "gcs":
		return NewGCSBucketClient(ctx)
	default:
		return NewS3BucketClient(ctx, s)
	}
}

func (s Settings) ConfigStringArray() []string {
	configStrArr := make([]string, 0)
	configStrArr = append(configStrArr, fmt.Sprintf("  - Dir: %s", s.Dir))
	configStrArr = append(configStrArr, fmt.Sprintf("  - Bucket: %s (%s)", s.Bucket, s.Provider))
	if s.Region != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - Region: %s", s.Region))
	}
	if s.Profile != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - IAMProfile: %s", s.Profile))
	}
	if s.Distribution != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - Distribution: %s", s.Distribution))
	}
	configStrArr = append(configStrArr, fmt.Sprintf("  - Concurrent Actions: %d", s.Concurrency))
	if s.Interval > 0 {
		configStrArr = append(configStrArr, fmt.Sprintf("  - Interval: %s", s.Interval))
	}
	if s.SNSTopic != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - SNSTopic: %s", s.SNSTopic))
	}
	if s.DryRun {
		configStrArr = append(configStrArr, "  - Dry Run")
	}

	return configStrArr
}
