package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Trebuchet TrebuchetConfig `yaml:"trebuchet"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Reader    ReaderConfig    `yaml:"reader"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type TrebuchetConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type ExtractorConfig struct {
	// SpelledWords enables matching "zero".."nine" alongside literal digits.
	SpelledWords bool `yaml:"spelled_words"`
}

type ReaderConfig struct {
	MaxLineBytes int `yaml:"max_line_bytes"`
}

type LoggingConfig struct {
	Level          string        `yaml:"level"`
	Format         string        `yaml:"format"`
	Output         string        `yaml:"output"`
	MaxAge         int           `yaml:"max_age"`
	ReportInterval time.Duration `yaml:"report_interval"`
}

type MetricsConfig struct {
	CloudWatch CloudWatchConfig `yaml:"cloudwatch"`
}

type CloudWatchConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Region          string `yaml:"region"`
	Namespace       string `yaml:"namespace"`
	Dashboard       string `yaml:"dashboard"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// DefaultConfig is the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Trebuchet: TrebuchetConfig{
			Name:    "trebuchet",
			Version: "1.0.0",
		},
		Extractor: ExtractorConfig{SpelledWords: true},
		Reader:    ReaderConfig{MaxLineBytes: 1024 * 1024},
		Logging: LoggingConfig{
			Level:          "info",
			Format:         "json",
			Output:         "stderr",
			ReportInterval: 30 * time.Second,
		},
		Metrics: MetricsConfig{
			CloudWatch: CloudWatchConfig{
				Namespace: "Trebuchet",
				Dashboard: "Trebuchet",
			},
		},
	}
}

// Load returns DefaultConfig with environment overrides when path is empty,
// and LoadConfig(path) otherwise.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		if err := validateConfig(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return cfg, nil
	}
	return LoadConfig(path)
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func applyEnvOverrides(cfg *Config) {
	cw := &cfg.Metrics.CloudWatch
	if !cw.Enabled {
		return
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cw.AccessKeyID = strings.TrimSpace(v)
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cw.SecretAccessKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cw.Region = strings.TrimSpace(v)
	}
	if v := os.Getenv("CLOUDWATCH_NAMESPACE"); v != "" {
		cw.Namespace = strings.TrimSpace(v)
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Trebuchet.Name == "" {
		return fmt.Errorf("trebuchet.name is required")
	}

	if cfg.Trebuchet.Version == "" {
		return fmt.Errorf("trebuchet.version is required")
	}

	if cfg.Reader.MaxLineBytes <= 0 {
		return fmt.Errorf("reader.max_line_bytes must be greater than 0")
	}

	if cfg.Logging.ReportInterval < 0 {
		return fmt.Errorf("logging.report_interval must not be negative")
	}

	if cfg.Metrics.CloudWatch.Enabled {
		if cfg.Metrics.CloudWatch.Namespace == "" {
			return fmt.Errorf("metrics.cloudwatch.namespace is required when CloudWatch is enabled")
		}
		if (cfg.Metrics.CloudWatch.AccessKeyID == "") != (cfg.Metrics.CloudWatch.SecretAccessKey == "") {
			return fmt.Errorf("metrics.cloudwatch.access_key_id and metrics.cloudwatch.secret_access_key must be set together")
		}
	}

	return nil
}
