// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort                = 8080
	defaultServerHost                = "0.0.0.0"
	defaultReadTimeout               = 30 * time.Second
	defaultWriteTimeout              = 30 * time.Second
	defaultDatabasePath              = "./data/vidarkiv.db"
	defaultDatabaseConnectionTimeout = 5 * time.Second
	defaultLogLevel                  = "info"
	defaultLogPretty                 = false
	defaultDatabaseEnableWAL         = true
	defaultArchiveSource             = SourceFile
	defaultArchiveDataDir            = "./data"
	defaultArchiveAssetBase          = "data/video"
	defaultArchiveSlideDir           = "timeline"
	defaultArchiveRequestTimeout     = 15 * time.Second
	defaultArchivePlayerScriptURL    = "scripts/popcorn-complete.min.js"
	defaultS3Region                  = "eu-central-1"
	defaultS3Prefix                  = "data/video"
	envPrefix                        = "VIDARKIV"
)

// Metadata sources understood by the archive loader
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceS3   = "s3"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Archive  ArchiveConfig
	S3       S3Config
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Path              string
	ConnectionTimeout time.Duration
	EnableWAL         bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// ArchiveConfig describes where video metadata lives and how the watch page
// refers to archive assets.
type ArchiveConfig struct {
	// Source selects the metadata loader: file, http or s3
	Source string
	// DataDir is the local archive root, served at /data in file mode
	DataDir string
	// BaseURL is the remote archive root used in http mode
	BaseURL string
	// AssetBase is the URL prefix for per-video assets on the watch page
	AssetBase       string
	SlideDir        string
	RequestTimeout  time.Duration
	PlayerScriptURL string
}

// S3Config holds object storage settings for the s3 metadata source
type S3Config struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	Region    string
	AccessKey string
	SecretKey string
}

// Load reads configuration from .env file, config files, environment variables, and defaults
func Load() (*Config, error) {
	// .env files are optional in production and CI where env vars are set directly
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/vidarkiv")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
// Every key needs a default so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)

	v.SetDefault("database.path", defaultDatabasePath)
	v.SetDefault("database.connectiontimeout", defaultDatabaseConnectionTimeout)
	v.SetDefault("database.enablewal", defaultDatabaseEnableWAL)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)

	v.SetDefault("archive.source", defaultArchiveSource)
	v.SetDefault("archive.datadir", defaultArchiveDataDir)
	v.SetDefault("archive.baseurl", "")
	v.SetDefault("archive.assetbase", defaultArchiveAssetBase)
	v.SetDefault("archive.slidedir", defaultArchiveSlideDir)
	v.SetDefault("archive.requesttimeout", defaultArchiveRequestTimeout)
	v.SetDefault("archive.playerscripturl", defaultArchivePlayerScriptURL)

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", defaultS3Prefix)
	v.SetDefault("s3.region", defaultS3Region)
	v.SetDefault("s3.accesskey", "")
	v.SetDefault("s3.secretkey", "")
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be > 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v (must be > 0)", c.Server.WriteTimeout)
	}
	if c.Database.ConnectionTimeout <= 0 {
		return fmt.Errorf("invalid database connection timeout: %v (must be > 0)", c.Database.ConnectionTimeout)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	validSources := []string{SourceFile, SourceHTTP, SourceS3}
	if !contains(validSources, c.Archive.Source) {
		return fmt.Errorf("invalid archive source: %s (must be one of: %s)", c.Archive.Source, strings.Join(validSources, ", "))
	}
	if c.Archive.RequestTimeout <= 0 {
		return fmt.Errorf("invalid archive request timeout: %v (must be > 0)", c.Archive.RequestTimeout)
	}

	switch c.Archive.Source {
	case SourceFile:
		if c.Archive.DataDir == "" {
			return errors.New("archive data dir is required for the file source")
		}
	case SourceHTTP:
		if c.Archive.BaseURL == "" {
			return errors.New("archive base url is required for the http source")
		}
	case SourceS3:
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket is required for the s3 source")
		}
	}

	return nil
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
