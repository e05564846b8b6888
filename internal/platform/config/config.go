package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SessionBackendFile     = "file"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
	SessionBackendMemory   = "memory"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Sandbox SandboxConfig `mapstructure:"sandbox"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Backend  string         `mapstructure:"backend"`
	File     string         `mapstructure:"file"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	// EncryptionKey, when set, seals every stored value with AES-256-GCM.
	EncryptionKey string `mapstructure:"encryption_key"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type PostgresConfig struct {
	URL       string `mapstructure:"url"`
	Namespace string `mapstructure:"namespace"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SandboxConfig struct {
	Addr          string        `mapstructure:"addr"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	AdminEmail    string        `mapstructure:"admin_email"`
	AdminPassword string        `mapstructure:"admin_password"`
	Seed          bool          `mapstructure:"seed"`
	// LoginRateLimit is signin attempts per email per minute; zero disables it.
	LoginRateLimit int `mapstructure:"login_rate_limit"`
}

// Load reads defaults, an optional .env file, an optional YAML file and
// EMS_* environment variables, in increasing order of precedence.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("EMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8083/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("session.backend", SessionBackendFile)
	v.SetDefault("session.file", defaultSessionFile())
	v.SetDefault("session.redis.addr", "localhost:6379")
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.redis.db", 0)
	v.SetDefault("session.redis.prefix", "ems:session:")
	v.SetDefault("session.postgres.url", "")
	v.SetDefault("session.postgres.namespace", "default")
	v.SetDefault("session.encryption_key", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("sandbox.addr", ":8083")
	v.SetDefault("sandbox.jwt_secret", "")
	v.SetDefault("sandbox.token_ttl", 8*time.Hour)
	v.SetDefault("sandbox.admin_email", "admin@ems.local")
	v.SetDefault("sandbox.admin_password", "")
	v.SetDefault("sandbox.seed", true)
	v.SetDefault("sandbox.login_rate_limit", 10)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ems", "session.json")
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	switch c.Session.Backend {
	case SessionBackendFile:
		if strings.TrimSpace(c.Session.File) == "" {
			return fmt.Errorf("session.file is required for the file backend")
		}
	case SessionBackendRedis:
		if strings.TrimSpace(c.Session.Redis.Addr) == "" {
			return fmt.Errorf("session.redis.addr is required for the redis backend")
		}
	case SessionBackendPostgres:
		if strings.TrimSpace(c.Session.Postgres.URL) == "" {
			return fmt.Errorf("session.postgres.url is required for the postgres backend")
		}
	case SessionBackendMemory:
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}
	return nil
}

// ValidateSandbox checks the settings ems-sandbox needs on top of Validate.
func (c Config) ValidateSandbox() error {
	if strings.TrimSpace(c.Sandbox.Addr) == "" {
		return fmt.Errorf("sandbox.addr is required")
	}
	if len(c.Sandbox.JWTSecret) < 16 {
		return fmt.Errorf("sandbox.jwt_secret must be at least 16 characters")
	}
	if c.Sandbox.TokenTTL <= 0 {
		return fmt.Errorf("sandbox.token_ttl must be positive")
	}
	if c.Sandbox.LoginRateLimit < 0 {
		return fmt.Errorf("sandbox.login_rate_limit must not be negative")
	}
	if c.Sandbox.Seed && strings.TrimSpace(c.Sandbox.AdminPassword) == "" {
		return fmt.Errorf("sandbox.admin_password must be set when sandbox.seed is enabled")
	}
	return nil
}
