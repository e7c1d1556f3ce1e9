package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ProjectX struct {
		BaseURL         string        `yaml:"base_url"`
		Username        string        `yaml:"username"`
		APIKey          string        `yaml:"api_key"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
		RetryMax        int           `yaml:"retry_max"`
		RetryBackoff    time.Duration `yaml:"retry_backoff"`
		TokenTTL        time.Duration `yaml:"token_ttl"`
		DefaultInterval string        `yaml:"default_interval"`
		LiveFreshWindow time.Duration `yaml:"live_fresh_window"`
	} `yaml:"projectx"`
	Analytics struct {
		SessionTimezone  string        `yaml:"session_timezone"`
		SwingNeighbors   int           `yaml:"swing_neighbors"`
		ContractCacheTTL time.Duration `yaml:"contract_cache_ttl"`
		BarsCacheTTL     time.Duration `yaml:"bars_cache_ttl"`
	} `yaml:"analytics"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		MemoryMaxSize int `yaml:"memory_max_size"`
	} `yaml:"cache"`
	Journal struct {
		Backend string `yaml:"backend"` // clickhouse or kafka
	} `yaml:"journal"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PROJECTX_API_BASE"); v != "" {
		c.ProjectX.BaseURL = v
	}
	if v := os.Getenv("PROJECTX_USER"); v != "" {
		c.ProjectX.Username = v
	}
	if v := os.Getenv("PROJECTX_API_KEY"); v != "" {
		c.ProjectX.APIKey = v
	}
	if v := os.Getenv("JOURNAL_BACKEND"); v != "" {
		c.Journal.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.ProjectX.BaseURL == "" {
		c.ProjectX.BaseURL = "https://api.topstepx.com"
	}
	c.ProjectX.BaseURL = strings.TrimRight(c.ProjectX.BaseURL, "/")
	if c.ProjectX.RequestTimeout <= 0 {
		c.ProjectX.RequestTimeout = 30 * time.Second
	}
	if c.ProjectX.RetryMax <= 0 {
		c.ProjectX.RetryMax = 3
	}
	if c.ProjectX.RetryBackoff <= 0 {
		c.ProjectX.RetryBackoff = 500 * time.Millisecond
	}
	if c.ProjectX.TokenTTL <= 0 {
		// upstream session tokens live ~24h; refresh slightly early
		c.ProjectX.TokenTTL = 23*time.Hour + 30*time.Minute
	}
	if c.ProjectX.DefaultInterval == "" {
		c.ProjectX.DefaultInterval = "1m"
	}
	if c.ProjectX.LiveFreshWindow <= 0 {
		c.ProjectX.LiveFreshWindow = 10 * time.Minute
	}
	if c.Analytics.SessionTimezone == "" {
		c.Analytics.SessionTimezone = "America/Chicago"
	}
	if c.Analytics.SwingNeighbors <= 0 {
		c.Analytics.SwingNeighbors = 2
	}
	if c.Analytics.ContractCacheTTL <= 0 {
		c.Analytics.ContractCacheTTL = time.Hour
	}
	if c.Analytics.BarsCacheTTL <= 0 {
		c.Analytics.BarsCacheTTL = 30 * time.Second
	}
	if c.Cache.MemoryMaxSize <= 0 {
		c.Cache.MemoryMaxSize = 1000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ProjectX.Username == "" {
		return fmt.Errorf("projectx.username is required")
	}
	if c.ProjectX.APIKey == "" {
		return fmt.Errorf("projectx.api_key is required")
	}
	if c.Journal.Backend != "" && c.Journal.Backend != "clickhouse" && c.Journal.Backend != "kafka" {
		return fmt.Errorf("journal.backend must be 'clickhouse' or 'kafka', got '%s'", c.Journal.Backend)
	}
	if c.Journal.Backend == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when journal.backend is kafka")
	}
	if c.Journal.Backend == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when journal.backend is clickhouse")
	}
	return nil
}
