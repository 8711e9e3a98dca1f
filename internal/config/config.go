package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"analytics-service/internal/analytics/model"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	StoreDriver  string
	StoreDSN     string
	FetchTimeout time.Duration

	Match MatchConfig
}

// MatchConfig tunes the fuzzy matcher; it can also come from the YAML file
// named by CONFIG_FILE.
type MatchConfig struct {
	Threshold  float64 `yaml:"threshold"`
	Metric     string  `yaml:"metric"`
	TopN       int     `yaml:"top_n"`
	CrossMerge bool    `yaml:"cross_merge"`
}

type fileConfig struct {
	Match *MatchConfig `yaml:"match"`
}

// Load reads the environment. .env should already be applied by main.
func Load() (Config, error) {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	timeout, err := time.ParseDuration(getenv("FETCH_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("FETCH_TIMEOUT: %w", err)
	}
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")

	cfg := Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/analytics-service.log"),
		MaxUploadMB:  mb,
		StoreDriver:  getenv("STORE_DRIVER", "sqlite"),
		StoreDSN:     getenv("STORE_DSN", "data/analytics.db"),
		FetchTimeout: timeout,
		Match:        defaultMatch(),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	// переменные окружения важнее файла
	if v := os.Getenv("MATCH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("MATCH_THRESHOLD: %w", err)
		}
		cfg.Match.Threshold = f
	}
	if v := os.Getenv("MATCH_METRIC"); v != "" {
		cfg.Match.Metric = v
	}
	if v := os.Getenv("TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("TOP_N: %w", err)
		}
		cfg.Match.TopN = n
	}
	if v := os.Getenv("CROSS_MERGE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("CROSS_MERGE: %w", err)
		}
		cfg.Match.CrossMerge = b
	}

	return cfg, cfg.validate()
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.Match != nil {
		m := *fc.Match
		if m.Threshold == 0 {
			m.Threshold = c.Match.Threshold
		}
		if m.Metric == "" {
			m.Metric = c.Match.Metric
		}
		if m.TopN == 0 {
			m.TopN = c.Match.TopN
		}
		c.Match = m
	}
	return nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.Match.Threshold <= 0 || c.Match.Threshold > 1 {
		return fmt.Errorf("match threshold must be in (0,1], got %v", c.Match.Threshold)
	}
	if c.Match.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.Match.TopN)
	}
	return nil
}

// Options is the engine view of the match settings.
func (c Config) Options() model.Options {
	return model.Options{
		Threshold:  c.Match.Threshold,
		Metric:     c.Match.Metric,
		TopN:       c.Match.TopN,
		CrossMerge: c.Match.CrossMerge,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func defaultMatch() MatchConfig {
	d := model.DefaultOptions()
	return MatchConfig{Threshold: d.Threshold, Metric: d.Metric, TopN: d.TopN}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
