// Package config loads service configuration from the environment (and an
// optional YAML file named by CONFIG_PATH).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Countries CountriesConfig `yaml:"countries"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"          env:"SERVER_ADDR"          env-default:":8080" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"15s"   validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15s"   validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"SERVER_IDLE_TIMEOUT"  env-default:"60s"   validate:"gt=0"`
	CORSOrigin   string        `yaml:"cors_origin"   env:"CORS_ORIGIN"          env-default:"http://localhost:3000" validate:"url"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
}

// PostgresConfig holds database credentials. Either URL or the discrete
// host/user/password fields must be present.
type PostgresConfig struct {
	URL             string        `yaml:"url"               env:"DATABASE_URL"`
	Host            string        `yaml:"host"              env:"DB_HOST"              validate:"required_without=URL"`
	Port            int           `yaml:"port"              env:"DB_PORT"              env-default:"5432"  validate:"min=1,max=65535"`
	User            string        `yaml:"user"              env:"DB_USER"              validate:"required_without=URL"`
	Password        string        `yaml:"password"          env:"DB_PASSWORD"          validate:"required_without=URL"`
	Database        string        `yaml:"database"          env:"DB_NAME"              env-default:"wild_oasis"`
	SSLMode         string        `yaml:"sslmode"           env:"DB_SSLMODE"           env-default:"disable" validate:"oneof=disable require verify-ca verify-full"`
	MaxConns        int32         `yaml:"max_conns"         env:"DB_MAX_CONNS"         env-default:"20"    validate:"min=1"`
	MinConns        int32         `yaml:"min_conns"         env:"DB_MIN_CONNS"         env-default:"2"     validate:"min=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"30m"   validate:"gt=0"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME" env-default:"5m"  validate:"gt=0"`
}

// DSN builds a libpq-compatible connection string.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type AuthConfig struct {
	GoogleClientID     string        `yaml:"google_client_id"     env:"AUTH_GOOGLE_ID"     validate:"required"`
	GoogleClientSecret string        `yaml:"google_client_secret" env:"AUTH_GOOGLE_SECRET" validate:"required"`
	SessionSecret      string        `yaml:"session_secret"       env:"AUTH_SECRET"        validate:"required,min=32"`
	SessionTTL         time.Duration `yaml:"session_ttl"          env:"AUTH_SESSION_TTL"   env-default:"720h" validate:"gt=0"`
	BaseURL            string        `yaml:"base_url"             env:"AUTH_URL"           env-default:"http://localhost:8080" validate:"url"`
	SecureCookie       bool          `yaml:"secure_cookie"        env:"AUTH_SECURE_COOKIE" env-default:"false"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"     env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	ViewTTL  time.Duration `yaml:"view_ttl" env:"REDIS_VIEW_TTL" env-default:"10m" validate:"gt=0"`
}

type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers"       env:"KAFKA_BROKERS"       env-separator:","`
	Topic        string        `yaml:"topic"         env:"KAFKA_TOPIC"         env-default:"bookings" validate:"required"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"KAFKA_WRITE_TIMEOUT" env-default:"5s"       validate:"gt=0"`
}

type CountriesConfig struct {
	URL     string        `yaml:"url"     env:"COUNTRIES_URL"     env-default:"https://countriesnow.space/api/v0.1/countries/flag/images" validate:"url"`
	Timeout time.Duration `yaml:"timeout" env:"COUNTRIES_TIMEOUT" env-default:"10s" validate:"gt=0"`
}

// Load reads the configuration and validates it.
func Load() (*Config, error) {
	var cfg Config

	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics, for use in main.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
