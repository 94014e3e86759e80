package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the webcore API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Site     SiteConfig     `yaml:"site"`
	Search   SearchConfig   `yaml:"search"`
	Contact  ContactConfig  `yaml:"contact"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SearchConfig holds relevance weight overrides for the unified search.
// Zero values keep the production defaults.
type SearchConfig struct {
	Weights WeightsConfig `yaml:"weights"`
}

// WeightsConfig mirrors the per-field scoring weights.
type WeightsConfig struct {
	TitleExact    int `yaml:"title_exact"`
	TitleMatch    int `yaml:"title_match"`
	ExcerptMatch  int `yaml:"excerpt_match"`
	ContentMatch  int `yaml:"content_match"`
	AuthorMatch   int `yaml:"author_match"`
	CategoryMatch int `yaml:"category_match"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	AdminKeys []string `yaml:"admin_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// PostgresConfig holds the relational store settings.
type PostgresConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the cache/stream store settings. Redis is optional:
// without it the sitemap renders every request and events are dropped.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SiteConfig holds sitemap/robots rendering settings.
type SiteConfig struct {
	BaseURL         string   `yaml:"base_url"`
	SitemapTTLSec   int      `yaml:"sitemap_ttl_sec"`
	RefreshSchedule string   `yaml:"refresh_schedule"` // cron expression
	Exclusions      []string `yaml:"exclusions"`
}

// ContactConfig holds contact-form intake settings.
type ContactConfig struct {
	DefaultRegion string `yaml:"default_region"` // ISO country code for national phone numbers
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.Site.SitemapTTLSec <= 0 {
		c.Site.SitemapTTLSec = 3600
	}
	if c.Site.RefreshSchedule == "" {
		c.Site.RefreshSchedule = "@hourly"
	}
	if c.Contact.DefaultRegion == "" {
		c.Contact.DefaultRegion = "AE"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Postgres.URL == "" {
		return fmt.Errorf("postgres.url is required")
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if strings.HasSuffix(c.Site.BaseURL, "/") {
		return fmt.Errorf("site.base_url must not end with a slash, got %q", c.Site.BaseURL)
	}
	for _, p := range c.Site.Exclusions {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("site.exclusions entries must start with /, got %q", p)
		}
	}
	if len(c.Contact.DefaultRegion) != 2 {
		return fmt.Errorf("contact.default_region must be a 2-letter country code, got %q", c.Contact.DefaultRegion)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
