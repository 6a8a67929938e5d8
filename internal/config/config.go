package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danny20232023/hris-sub007/internal/shared/connection"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/local.yaml"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	JWT      JWTConfig      `yaml:"jwt"`
	RBAC     RBACConfig     `yaml:"rbac"`
	Outbox   OutboxConfig   `yaml:"outbox"`
	Leave    LeaveConfig    `yaml:"leave"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"-"`
	WriteTimeout    time.Duration `yaml:"-"`
	IdleTimeout     time.Duration `yaml:"-"`
	ReadTimeoutRaw  string        `yaml:"read_timeout"`
	WriteTimeoutRaw string        `yaml:"write_timeout"`
	IdleTimeoutRaw  string        `yaml:"idle_timeout"`
}

type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           string `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Name           string `yaml:"name"`
	SSLMode        string `yaml:"ssl_mode"`
	MaxOpenConns   int    `yaml:"max_open_conns"`
	MaxIdleConns   int    `yaml:"max_idle_conns"`
	ConnectRetries int    `yaml:"connect_retries"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	ConsumerGroup string   `yaml:"consumer_group"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type RBACConfig struct {
	// ModelPath is optional; the built-in domain RBAC model is used when empty.
	ModelPath string `yaml:"model_path"`
}

type OutboxConfig struct {
	PollInterval    time.Duration `yaml:"-"`
	PollIntervalRaw string        `yaml:"poll_interval"`
	BatchSize       int           `yaml:"batch_size"`
	MaxRetries      int           `yaml:"max_retries"`
}

type LeaveConfig struct {
	// RestoreCreditOnCancel returns the deducted credit when an approved leave is cancelled.
	// Nil means unset and defaults to true.
	RestoreCreditOnCancel *bool `yaml:"restore_credit_on_cancel"`
}

func (l LeaveConfig) RestoreCredit() bool {
	return l.RestoreCreditOnCancel == nil || *l.RestoreCreditOnCancel
}

// Load reads .env, then the YAML file at path (CONFIG_PATH or DefaultPath when path is
// empty; a missing file is not an error), then applies environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.RBAC.ModelPath, "RBAC_MODEL_PATH")
	setString(&c.Kafka.ConsumerGroup, "KAFKA_CONSUMER_GROUP")

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = os.Getenv("KAFKA_BROKER")
	}
	if brokers != "" {
		c.Kafka.Brokers = splitList(brokers)
	}

	if v := os.Getenv("LEAVE_RESTORE_CREDIT_ON_CANCEL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: LEAVE_RESTORE_CREDIT_ON_CANCEL: %w", err)
		}
		c.Leave.RestoreCreditOnCancel = &b
	}
	return nil
}

func (c *Config) validateAndNormalize() error {
	s := &c.Server
	if s.Port == "" {
		s.Port = "3000"
	}
	var err error
	if s.ReadTimeout, err = parseDuration(s.ReadTimeoutRaw, 5*time.Second); err != nil {
		return fmt.Errorf("config: server.read_timeout: %w", err)
	}
	if s.WriteTimeout, err = parseDuration(s.WriteTimeoutRaw, 10*time.Second); err != nil {
		return fmt.Errorf("config: server.write_timeout: %w", err)
	}
	if s.IdleTimeout, err = parseDuration(s.IdleTimeoutRaw, 60*time.Second); err != nil {
		return fmt.Errorf("config: server.idle_timeout: %w", err)
	}

	db := &c.Database
	if db.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if db.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if db.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if db.Port == "" {
		db.Port = "5432"
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	if db.ConnectRetries <= 0 {
		db.ConnectRetries = 5
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Kafka.ConsumerGroup == "" {
		c.Kafka.ConsumerGroup = "hris-credit-seeder"
	}

	o := &c.Outbox
	if o.PollInterval, err = parseDuration(o.PollIntervalRaw, 3*time.Second); err != nil {
		return fmt.Errorf("config: outbox.poll_interval: %w", err)
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 50
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 10
	}
	return nil
}

// Postgres converts the database section for the connection helpers.
func (d DatabaseConfig) Postgres() connection.PostgresOptions {
	return connection.PostgresOptions{
		Host:         d.Host,
		Port:         d.Port,
		User:         d.User,
		Password:     d.Password,
		Name:         d.Name,
		SSLMode:      d.SSLMode,
		MaxOpenConns: d.MaxOpenConns,
		MaxIdleConns: d.MaxIdleConns,
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}
