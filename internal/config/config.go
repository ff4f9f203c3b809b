package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv  string `yaml:"app_env" validate:"oneof=development production test"`
	AppPort string `yaml:"app_port" validate:"required"`

	DBDriver   string `yaml:"db_driver" validate:"oneof=mysql postgres"`
	DBLogLevel string `yaml:"db_log_level" validate:"oneof=silent error warn info"`

	MySQLHost string `yaml:"mysql_host" validate:"required_if=DBDriver mysql"`
	MySQLPort string `yaml:"mysql_port" validate:"required_if=DBDriver mysql"`
	MySQLDB   string `yaml:"mysql_db" validate:"required_if=DBDriver mysql"`
	MySQLUser string `yaml:"mysql_user" validate:"required_if=DBDriver mysql"`
	MySQLPass string `yaml:"mysql_pass"`

	PostgresDSN string `yaml:"postgres_dsn" validate:"required_if=DBDriver postgres"`

	RedisAddr string `yaml:"redis_addr" validate:"required"`
	RedisDB   int    `yaml:"redis_db" validate:"gte=0"`

	IdempTTLSecs      int `yaml:"idempotency_ttl_seconds" validate:"gt=0"`
	AutosaveWindowMS  int `yaml:"autosave_window_ms" validate:"gte=0"`
	ResetTokenTTLMins int `yaml:"reset_token_ttl_minutes" validate:"gt=0"`
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func defaults() *Config {
	return &Config{
		AppEnv:     "development",
		AppPort:    "8080",
		DBDriver:   "mysql",
		DBLogLevel: "warn",
		MySQLHost:  "mysql",
		MySQLPort:  "3306",
		MySQLDB:    "timesheet",
		MySQLUser:  "timesheet",
		MySQLPass:  "timesheet",

		RedisAddr:         "redis:6379",
		IdempTTLSecs:      300,
		AutosaveWindowMS:  500,
		ResetTokenTTLMins: 60,
	}
}

// Load resolves configuration in layers: defaults, then the YAML file named
// by CONFIG_FILE (if any), then environment variables. A .env file in the
// working directory is loaded into the environment first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := c.mergeFile(path); err != nil {
			return nil, err
		}
	}

	c.AppEnv = getenv("APP_ENV", c.AppEnv)
	c.AppPort = getenv("APP_PORT", c.AppPort)
	c.DBDriver = getenv("DB_DRIVER", c.DBDriver)
	c.DBLogLevel = getenv("DB_LOG_LEVEL", c.DBLogLevel)
	c.MySQLHost = getenv("MYSQL_HOST", c.MySQLHost)
	c.MySQLPort = getenv("MYSQL_PORT", c.MySQLPort)
	c.MySQLDB = getenv("MYSQL_DB", c.MySQLDB)
	c.MySQLUser = getenv("MYSQL_USER", c.MySQLUser)
	c.MySQLPass = getenv("MYSQL_PASS", c.MySQLPass)
	c.PostgresDSN = getenv("POSTGRES_DSN", c.PostgresDSN)
	c.RedisAddr = getenv("REDIS_ADDR", c.RedisAddr)

	c.RedisDB = getenvInt("REDIS_DB", c.RedisDB)
	c.IdempTTLSecs = getenvInt("IDEMPOTENCY_TTL_SECONDS", c.IdempTTLSecs)
	c.AutosaveWindowMS = getenvInt("AUTOSAVE_WINDOW_MS", c.AutosaveWindowMS)
	c.ResetTokenTTLMins = getenvInt("RESET_TOKEN_TTL_MINUTES", c.ResetTokenTTLMins)
	return c, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fmt.Errorf("invalid config %s: failed %q", ve[0].Field(), ve[0].Tag())
		}
		return err
	}
	if c.DBDriver == "mysql" {
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) AutosaveWindow() time.Duration {
	return time.Duration(c.AutosaveWindowMS) * time.Millisecond
}

func (c *Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.ResetTokenTTLMins) * time.Minute
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
