// Package config resolves runtime settings once at startup: an optional YAML
// file named by CIVREG_CONFIG_FILE, then environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Server    Server          `yaml:"server"`
	DB        DBConfig        `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	LogLevel        string        `yaml:"log_level"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DBConfig holds the Postgres connection parameters.
type DBConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN renders the parameters as a postgres:// URL understood by lib/pq.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig is optional; an empty URL selects the in-process limiter.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// AuthConfig configures operator bearer tokens.
type AuthConfig struct {
	JWTSigningKey string `yaml:"jwt_signing_key"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
}

// RateLimitConfig bounds authentication attempts per client IP.
type RateLimitConfig struct {
	AuthPerMinute int `yaml:"auth_per_minute"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			LogLevel:        "info",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Host:            "localhost",
			Port:            "5432",
			Name:            "civreg",
			User:            "postgres",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Auth: AuthConfig{
			Issuer:   "civreg",
			Audience: "civreg-operators",
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: 30,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file and the
// process environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := Defaults()

	if path := getenv("CIVREG_CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	overlay(&cfg.Server.Addr, getenv("CIVREG_ADDR"))
	overlay(&cfg.Server.LogLevel, getenv("LOG_LEVEL"))
	overlay(&cfg.DB.Host, getenv("DB_HOST"))
	overlay(&cfg.DB.Port, getenv("DB_PORT"))
	overlay(&cfg.DB.Name, getenv("DB_NAME"))
	overlay(&cfg.DB.User, getenv("DB_USER"))
	overlay(&cfg.DB.Password, getenv("DB_PASSWORD"))
	overlay(&cfg.DB.SSLMode, getenv("DB_SSLMODE"))
	overlay(&cfg.Redis.URL, getenv("REDIS_URL"))
	overlay(&cfg.Auth.JWTSigningKey, getenv("CIVREG_JWT_SIGNING_KEY"))

	if v := getenv("AUTH_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse AUTH_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit.AuthPerMinute = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSigningKey == "" {
		errs = append(errs, errors.New("CIVREG_JWT_SIGNING_KEY is required"))
	}
	if c.RateLimit.AuthPerMinute <= 0 {
		errs = append(errs, errors.New("auth rate limit must be positive"))
	}
	if c.DB.Host == "" || c.DB.Name == "" {
		errs = append(errs, errors.New("database host and name are required"))
	}
	return errors.Join(errs...)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
