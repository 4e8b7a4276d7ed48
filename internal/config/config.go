package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	appName   = "talent-match"
	envPrefix = "TALENT"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Explain   ExplainConfig   `mapstructure:"explain"`
	Matching  MatchingConfig  `mapstructure:"matching"`
}

type AppConfig struct {
	AppName     string `mapstructure:"name"`
	Environment string `mapstructure:"env"`
	HTTPPort    string `mapstructure:"http_port"`
	LogJSON     bool   `mapstructure:"log_json"`
	Debug       bool   `mapstructure:"debug"`
}

type DatabaseConfig struct {
	DBHost     string `mapstructure:"host"`
	DBPort     string `mapstructure:"port"`
	DBName     string `mapstructure:"name"`
	DBUser     string `mapstructure:"user"`
	DBPassword string `mapstructure:"password"`
	DBSSLMode  string `mapstructure:"ssl_mode"`

	ConnectTimeout        time.Duration `mapstructure:"connect_timeout"`
	PoolMaxConns          int32         `mapstructure:"pool_max_conns"`
	PoolMinConns          int32         `mapstructure:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `mapstructure:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `mapstructure:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `mapstructure:"pool_health_check_period"`

	// SlowQueryThreshold logs statements slower than this; zero disables tracing.
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`

	RunMigrations bool `mapstructure:"run_migrations"`
	RunSeeders    bool `mapstructure:"run_seeders"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api_key"`
	MaxLogLength int    `mapstructure:"max_log_length"`
}

type EmbeddingConfig struct {
	Provider   string        `mapstructure:"provider"`
	Model      string        `mapstructure:"model"`
	Dimensions int           `mapstructure:"dimensions"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RateLimit  float64       `mapstructure:"rate_limit"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

type ExplainConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type MatchingConfig struct {
	Workers      int     `mapstructure:"workers"`
	DefaultLimit int     `mapstructure:"default_limit"`
	MaxLimit     int     `mapstructure:"max_limit"`
	RateLimit    float64 `mapstructure:"rate_limit"`
}

var errMissingRequiredConfig = errors.New("missing required configuration")

// envAliases keeps the plain variable names used by deployments working next to the TALENT_ prefix.
var envAliases = map[string][]string{
	"app.name":           {"APP_NAME"},
	"app.env":            {"APP_ENV"},
	"app.http_port":      {"HTTP_PORT"},
	"database.host":      {"DB_HOST"},
	"database.port":      {"DB_PORT"},
	"database.name":      {"DB_NAME"},
	"database.user":      {"DB_USER"},
	"database.password":  {"DB_PASSWORD"},
	"database.ssl_mode":  {"DB_SSL_MODE"},
	"redis.host":         {"REDIS_HOST"},
	"redis.port":         {"REDIS_PORT"},
	"redis.password":     {"REDIS_PASSWORD"},
	"gemini.api_key":     {"GEMINI_API_KEY"},
	"embedding.base_url": {"OLLAMA_HOST"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", appName)
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.log_json", false)
	v.SetDefault("app.debug", false)

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("database.pool_max_conns", 10)
	v.SetDefault("database.pool_min_conns", 0)
	v.SetDefault("database.pool_max_conn_lifetime", time.Hour)
	v.SetDefault("database.pool_max_conn_idle_time", 30*time.Minute)
	v.SetDefault("database.pool_health_check_period", time.Minute)
	v.SetDefault("database.slow_query_threshold", 500*time.Millisecond)
	v.SetDefault("database.run_migrations", true)
	v.SetDefault("database.run_seeders", false)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.max_log_length", 400)

	v.SetDefault("embedding.provider", "gemini")
	v.SetDefault("embedding.model", "")
	v.SetDefault("embedding.dimensions", 768)
	v.SetDefault("embedding.base_url", "http://localhost:11434")
	v.SetDefault("embedding.timeout", 10*time.Second)
	v.SetDefault("embedding.max_retries", 3)
	v.SetDefault("embedding.rate_limit", 10.0)
	v.SetDefault("embedding.cache_ttl", 24*time.Hour)

	v.SetDefault("explain.enabled", false)
	v.SetDefault("explain.model", "")
	v.SetDefault("explain.timeout", 10*time.Second)
	v.SetDefault("explain.max_retries", 2)

	v.SetDefault("matching.workers", 8)
	v.SetDefault("matching.default_limit", 20)
	v.SetDefault("matching.max_limit", 100)
	v.SetDefault("matching.rate_limit", 0.0)
}

// NewViper builds a viper instance reading file (or talent-match.yaml from the working
// directory when file is empty) and the environment. A missing default file is not an error.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, aliases := range envAliases {
		names := append([]string{envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		var err error
		if v, err = NewViper(""); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	trimAll(&cfg)

	if missing := cfg.missing(); len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredConfig, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c Config) missing() []string {
	var missing []string
	req := func(key, val string) {
		if val == "" {
			missing = append(missing, key)
		}
	}

	req("app.http_port", c.App.HTTPPort)
	req("database.host", c.Database.DBHost)
	req("database.name", c.Database.DBName)
	req("database.user", c.Database.DBUser)

	switch c.Embedding.Provider {
	case "gemini":
		req("gemini.api_key", c.Gemini.APIKey)
	case "ollama":
		req("embedding.base_url", c.Embedding.BaseURL)
	default:
		missing = append(missing, "embedding.provider (gemini|ollama)")
	}
	if c.Explain.Enabled && c.Embedding.Provider != "gemini" {
		req("gemini.api_key", c.Gemini.APIKey)
	}
	if c.Embedding.Dimensions <= 0 {
		missing = append(missing, "embedding.dimensions")
	}

	return missing
}

func trimAll(c *Config) {
	c.App.HTTPPort = strings.TrimSpace(c.App.HTTPPort)
	c.Database.DBHost = strings.TrimSpace(c.Database.DBHost)
	c.Database.DBPort = strings.TrimSpace(c.Database.DBPort)
	c.Database.DBName = strings.TrimSpace(c.Database.DBName)
	c.Database.DBUser = strings.TrimSpace(c.Database.DBUser)
	c.Database.DBSSLMode = strings.TrimSpace(c.Database.DBSSLMode)
	c.Redis.Host = strings.TrimSpace(c.Redis.Host)
	c.Redis.Port = strings.TrimSpace(c.Redis.Port)
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	c.Embedding.Provider = strings.ToLower(strings.TrimSpace(c.Embedding.Provider))
	c.Embedding.BaseURL = strings.TrimSpace(c.Embedding.BaseURL)
}
