// Package config loads configuration from environment variables and an
// optional YAML file. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFolderPath = "~/Documents/gestor"
	DefaultAPIURL     = "http://localhost:8080"
)

// Config holds the settings shared by every binary
type Config struct {
	Folder      string `yaml:"folder"`
	APIURL      string `yaml:"api"`
	StatePath   string `yaml:"state"`
	DatabaseURL string `yaml:"database_url"`
	ListenAddr  string `yaml:"listen_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	LogPath     string `yaml:"log_path"`
}

// DatabaseConfig is present only when a database URL is configured
type DatabaseConfig struct {
	URL string
}

// Load reads the YAML file (if any) and applies env overrides and defaults.
func Load() (*Config, error) {
	return LoadFile(FilePath())
}

// LoadFile is Load with an explicit file path; a missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	cfg.Folder = envOr("STUDYTRACK_FOLDER", or(cfg.Folder, DefaultFolderPath))
	cfg.APIURL = envOr("STUDYTRACK_API", or(cfg.APIURL, DefaultAPIURL))
	cfg.StatePath = envOr("STUDYTRACK_STATE", or(cfg.StatePath, filepath.Join(dataHome(), "studytrack", "state.db")))
	cfg.DatabaseURL = envOr("DATABASE_URL", cfg.DatabaseURL)
	cfg.ListenAddr = envOr("LISTEN_ADDR", or(cfg.ListenAddr, ":8080"))
	cfg.MetricsAddr = envOr("METRICS_ADDR", or(cfg.MetricsAddr, ":9090"))
	cfg.LogLevel = envOr("LOG_LEVEL", or(cfg.LogLevel, "info"))
	cfg.LogFormat = envOr("LOG_FORMAT", or(cfg.LogFormat, "json"))
	cfg.LogPath = envOr("STUDYTRACK_LOG", or(cfg.LogPath, filepath.Join(stateHome(), "studytrack", "studytrack.log")))

	cfg.Folder = ExpandHome(cfg.Folder)
	cfg.StatePath = ExpandHome(cfg.StatePath)
	return cfg, nil
}

// Database returns the database settings, with sslmode=require added when
// the URL does not name a mode.
func (c *Config) Database() (DatabaseConfig, bool) {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return DatabaseConfig{}, false
	}
	return DatabaseConfig{URL: withSSLMode(c.DatabaseURL)}, true
}

func withSSLMode(raw string) string {
	if strings.Contains(raw, "sslmode=") {
		return raw
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		q := u.Query()
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
		return u.String()
	}
	// key=value DSN
	return raw + " sslmode=require"
}

// FilePath returns the location of the optional YAML file
func FilePath() string {
	if p := os.Getenv("STUDYTRACK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configHome(), "studytrack", "config.yaml")
}

// FolderPath returns the folder from STUDYTRACK_FOLDER, falling back to
// DefaultFolderPath.
func FolderPath() string {
	return ExpandHome(envOr("STUDYTRACK_FOLDER", DefaultFolderPath))
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func xdg(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, fallback)
}

func configHome() string { return xdg("XDG_CONFIG_HOME", ".config") }
func dataHome() string   { return xdg("XDG_DATA_HOME", ".local/share") }
func stateHome() string  { return xdg("XDG_STATE_HOME", ".local/state") }
