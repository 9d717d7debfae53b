package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Questions QuestionsConfig `yaml:"questions"`
	Responses ResponsesConfig `yaml:"responses"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	MCP       MCPConfig       `yaml:"mcp"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	TrustProxy      bool          `yaml:"trust_proxy"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	BodyLimit       int64         `yaml:"body_limit"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DBConfig struct {
	Path            string        `yaml:"path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
	// Path sends logs to a size-capped file instead of stderr.
	Path string `yaml:"path"`
}

// QuestionsConfig restricts master question types. An empty list accepts any type.
type QuestionsConfig struct {
	Types []string `yaml:"types"`
}

type ResponsesConfig struct {
	// CountIgnoresFilters keeps pagination totals counting every response of
	// the form regardless of is_complete and user_id.
	CountIgnoresFilters bool `yaml:"count_ignores_filters"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3001,
			CORSOrigins:     []string{"*"},
			BodyLimit:       10 << 20,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Path:            "formbuilder.db",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxIdleTime: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Questions: QuestionsConfig{
			Types: []string{"single-select", "multi-select", "free-text"},
		},
		Responses: ResponsesConfig{
			CountIgnoresFilters: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("FORMBUILDER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("server body_limit must be positive")
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db path is required")
	}
	if c.DB.MaxOpenConns < 0 || c.DB.MaxIdleConns < 0 {
		return fmt.Errorf("db pool sizes must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("FORMBUILDER_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("FORMBUILDER_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid FORMBUILDER_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("FORMBUILDER_SERVER_TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FORMBUILDER_SERVER_TRUST_PROXY: %w", err)
		}
		cfg.Server.TrustProxy = b
	}
	if origins := os.Getenv("FORMBUILDER_SERVER_CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = splitList(origins)
	}
	if dbPath := os.Getenv("FORMBUILDER_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if v := os.Getenv("FORMBUILDER_DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FORMBUILDER_DB_MAX_OPEN_CONNS: %w", err)
		}
		cfg.DB.MaxOpenConns = n
	}
	if level := os.Getenv("FORMBUILDER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("FORMBUILDER_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if v := os.Getenv("FORMBUILDER_LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FORMBUILDER_LOG_PRETTY: %w", err)
		}
		cfg.Log.Pretty = b
	}
	if types, ok := os.LookupEnv("FORMBUILDER_QUESTION_TYPES"); ok {
		cfg.Questions.Types = splitList(types)
	}
	if v := os.Getenv("FORMBUILDER_RESPONSES_COUNT_IGNORES_FILTERS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FORMBUILDER_RESPONSES_COUNT_IGNORES_FILTERS: %w", err)
		}
		cfg.Responses.CountIgnoresFilters = b
	}
	if v := os.Getenv("FORMBUILDER_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FORMBUILDER_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = b
	}
	if v := os.Getenv("FORMBUILDER_MCP_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FORMBUILDER_MCP_ENABLED: %w", err)
		}
		cfg.MCP.Enabled = b
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
