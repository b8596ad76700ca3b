package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	AWS         AWSConfig         `yaml:"aws" mapstructure:"aws"`
	Connect     ConnectConfig     `yaml:"connect" mapstructure:"connect"`
	Bedrock     BedrockConfig     `yaml:"bedrock" mapstructure:"bedrock"`
	Destination DestinationConfig `yaml:"destination" mapstructure:"destination"`
	Presign     PresignConfig     `yaml:"presign" mapstructure:"presign"`
	Manifest    ManifestConfig    `yaml:"manifest" mapstructure:"manifest"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// AWSConfig holds cross-service AWS settings. Region and credentials come
// from the default chain; AccountID, when set, is passed as the expected
// bucket owner on S3 reads and writes.
type AWSConfig struct {
	AccountID string `yaml:"account_id" mapstructure:"account_id"`
}

// ConnectConfig identifies the Amazon Connect instance whose contacts are
// resolved.
type ConnectConfig struct {
	InstanceID string `yaml:"instance_id" mapstructure:"instance_id"`
}

// BedrockConfig configures the transcript humanization model.
type BedrockConfig struct {
	ModelID     string `yaml:"model_id" mapstructure:"model_id"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxTokens   int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// Timeout returns the per-request model timeout. Model latency dominates the
// run, so this is deliberately long.
func (b BedrockConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// DestinationConfig locates the output manifest.
type DestinationConfig struct {
	Bucket string `yaml:"bucket" mapstructure:"bucket"`
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

// PresignConfig configures issued retrieval links.
type PresignConfig struct {
	ExpiryHours int `yaml:"expiry_hours" mapstructure:"expiry_hours"`
}

// Expiry returns the presigned link lifetime.
func (p PresignConfig) Expiry() time.Duration {
	return time.Duration(p.ExpiryHours) * time.Hour
}

// ManifestConfig bounds input manifest parsing.
type ManifestConfig struct {
	MaxLines int `yaml:"max_lines" mapstructure:"max_lines"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PDR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("destination.prefix", "PDR/")
	v.SetDefault("presign.expiry_hours", 168)
	v.SetDefault("manifest.max_lines", 1000000)
	v.SetDefault("bedrock.model_id", "anthropic.claude-3-5-sonnet-20241022-v2:0")
	v.SetDefault("bedrock.timeout_secs", 600)
	v.SetDefault("bedrock.max_tokens", 8192)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
