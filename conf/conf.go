// Package conf loads server configuration from an optional TOML file
// with environment variable overrides. Environment always wins, so
// deployments can ship a base config.toml and override secrets per
// environment.
package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	ListenAddr     string   `toml:"listen_addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
	JwtKey         string   `toml:"jwt_key"`

	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	S3       S3Config       `toml:"s3"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SslMode  string `toml:"sslmode"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
}

type S3Config struct {
	Region string `toml:"region"`
	Bucket string `toml:"bucket"`
}

// Load reads the TOML file at path if it exists and applies environment
// overrides on top. A missing file is fine; missing required values are
// not.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr: ":8080",
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			SslMode: "disable",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
	}

	if raw, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.JwtKey == "" {
		return nil, fmt.Errorf("jwt key is not set (JWT_KEY)")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfEnv(&cfg.ListenAddr, "LISTEN_ADDR")
	setIfEnv(&cfg.JwtKey, "JWT_KEY")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}

	setIfEnv(&cfg.Postgres.Host, "POSTGRES_HOST")
	setIfEnv(&cfg.Postgres.Port, "POSTGRES_PORT")
	setIfEnv(&cfg.Postgres.User, "POSTGRES_USER")
	setIfEnv(&cfg.Postgres.Password, "POSTGRES_PW")
	setIfEnv(&cfg.Postgres.Database, "POSTGRES_DB")
	setIfEnv(&cfg.Postgres.SslMode, "POSTGRES_SSLMODE")

	setIfEnv(&cfg.Redis.Addr, "REDIS_ADDR")
	setIfEnv(&cfg.Redis.Password, "REDIS_PW")

	setIfEnv(&cfg.S3.Region, "S3_REGION")
	setIfEnv(&cfg.S3.Bucket, "S3_TESTCASE_BUCKET")
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// PgConnStr renders the keyword/value connection string pgx expects.
func (c *Config) PgConnStr() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Postgres.Host, c.Postgres.Port, c.Postgres.User,
		c.Postgres.Password, c.Postgres.Database, c.Postgres.SslMode)
}
