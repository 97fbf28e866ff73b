package config

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Test server defaults
	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Server.Host != defaultServerHost {
		t.Errorf("Server.Host = %s, want %s", cfg.Server.Host, defaultServerHost)
	}

	// Test database defaults
	if cfg.Database.Path != defaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, defaultDatabasePath)
	}
	if cfg.Database.EnableWAL != defaultDatabaseEnableWAL {
		t.Errorf("Database.EnableWAL = %v, want %v", cfg.Database.EnableWAL, defaultDatabaseEnableWAL)
	}

	// Test logging defaults
	if cfg.Logging.Level != defaultLogLevel {
		t.Errorf("Logging.Level = %s, want %s", cfg.Logging.Level, defaultLogLevel)
	}

	// Test archive defaults
	if cfg.Archive.Source != SourceFile {
		t.Errorf("Archive.Source = %s, want %s", cfg.Archive.Source, SourceFile)
	}
	if cfg.Archive.DataDir != defaultArchiveDataDir {
		t.Errorf("Archive.DataDir = %s, want %s", cfg.Archive.DataDir, defaultArchiveDataDir)
	}
	if cfg.Archive.AssetBase != defaultArchiveAssetBase {
		t.Errorf("Archive.AssetBase = %s, want %s", cfg.Archive.AssetBase, defaultArchiveAssetBase)
	}
	if cfg.Archive.SlideDir != defaultArchiveSlideDir {
		t.Errorf("Archive.SlideDir = %s, want %s", cfg.Archive.SlideDir, defaultArchiveSlideDir)
	}
	if cfg.Archive.RequestTimeout != defaultArchiveRequestTimeout {
		t.Errorf("Archive.RequestTimeout = %v, want %v", cfg.Archive.RequestTimeout, defaultArchiveRequestTimeout)
	}

	// Test s3 defaults
	if cfg.S3.Prefix != defaultS3Prefix {
		t.Errorf("S3.Prefix = %s, want %s", cfg.S3.Prefix, defaultS3Prefix)
	}
	if cfg.S3.Region != defaultS3Region {
		t.Errorf("S3.Region = %s, want %s", cfg.S3.Region, defaultS3Region)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("VIDARKIV_SERVER_PORT", "9090")
	t.Setenv("VIDARKIV_LOGGING_LEVEL", "debug")
	t.Setenv("VIDARKIV_ARCHIVE_SOURCE", "http")
	t.Setenv("VIDARKIV_ARCHIVE_BASEURL", "https://archive.example.org")
	t.Setenv("VIDARKIV_ARCHIVE_REQUESTTIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Archive.Source != SourceHTTP {
		t.Errorf("Archive.Source = %s, want %s", cfg.Archive.Source, SourceHTTP)
	}
	if cfg.Archive.BaseURL != "https://archive.example.org" {
		t.Errorf("Archive.BaseURL = %s", cfg.Archive.BaseURL)
	}
	if cfg.Archive.RequestTimeout != 3*time.Second {
		t.Errorf("Archive.RequestTimeout = %v, want 3s", cfg.Archive.RequestTimeout)
	}
}

func TestConfigEnvInvalidSource(t *testing.T) {
	t.Setenv("VIDARKIV_ARCHIVE_SOURCE", "ftp")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for unknown archive source")
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		Database: DatabaseConfig{
			Path:              "./data/vidarkiv.db",
			ConnectionTimeout: defaultDatabaseConnectionTimeout,
			EnableWAL:         true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Archive: ArchiveConfig{
			Source:         SourceFile,
			DataDir:        "./data",
			AssetBase:      "data/video",
			SlideDir:       "timeline",
			RequestTimeout: defaultArchiveRequestTimeout,
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero write timeout",
			mutate:  func(c *Config) { c.Server.WriteTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero database timeout",
			mutate:  func(c *Config) { c.Database.ConnectionTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: true,
		},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Archive.Source = "ftp" },
			wantErr: true,
		},
		{
			name:    "zero request timeout",
			mutate:  func(c *Config) { c.Archive.RequestTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "file source without data dir",
			mutate:  func(c *Config) { c.Archive.DataDir = "" },
			wantErr: true,
		},
		{
			name:    "http source without base url",
			mutate:  func(c *Config) { c.Archive.Source = SourceHTTP },
			wantErr: true,
		},
		{
			name: "http source with base url",
			mutate: func(c *Config) {
				c.Archive.Source = SourceHTTP
				c.Archive.BaseURL = "https://archive.example.org"
			},
			wantErr: false,
		},
		{
			name:    "s3 source without bucket",
			mutate:  func(c *Config) { c.Archive.Source = SourceS3 },
			wantErr: true,
		},
		{
			name: "s3 source with bucket",
			mutate: func(c *Config) {
				c.Archive.Source = SourceS3
				c.S3.Bucket = "video-archive"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContains(t *testing.T) {
	slice := []string{"file", "http", "s3"}

	if !contains(slice, "http") {
		t.Error("contains() = false, want true for present item")
	}
	if contains(slice, "ftp") {
		t.Error("contains() = true, want false for missing item")
	}
	if contains(nil, "file") {
		t.Error("contains() = true, want false for nil slice")
	}
}
