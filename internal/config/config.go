package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
	Channel   ChannelConfig   `mapstructure:"channel"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port         string `mapstructure:"SERVER_PORT"`
	Host         string `mapstructure:"SERVER_HOST"`
	Env          string `mapstructure:"ENV"`
	ReadTimeout  string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"DATABASE_URL"`
	Host     string `mapstructure:"DATABASE_HOST"`
	Port     string `mapstructure:"DATABASE_PORT"`
	Name     string `mapstructure:"DATABASE_NAME"`
	User     string `mapstructure:"DATABASE_USER"`
	Password string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode  string `mapstructure:"DATABASE_SSLMODE"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// SchedulerConfig is the explicit trigger configuration: cron expressions
// (with seconds field) plus the timezone they are evaluated in. The core
// only implements the handlers, not the scheduling mechanism.
type SchedulerConfig struct {
	ReminderSpec string `mapstructure:"SCHEDULER_REMINDER_SPEC"`
	ReportSpec   string `mapstructure:"SCHEDULER_REPORT_SPEC"`
	BackupSpec   string `mapstructure:"SCHEDULER_BACKUP_SPEC"`
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	SchemeDurationWeeks int    `mapstructure:"SCHEME_DURATION_WEEKS"`
	GraceWeeks          int    `mapstructure:"GRACE_WEEKS"`
	CurrencySymbol      string `mapstructure:"CURRENCY_SYMBOL"`
	AppName             string `mapstructure:"APP_NAME"`
	TickConcurrency     int    `mapstructure:"TICK_CONCURRENCY"`
	DispatchTimeout     string `mapstructure:"DISPATCH_TIMEOUT"`
	ProgressCacheTTL    string `mapstructure:"PROGRESS_CACHE_TTL"`
}

type ChannelConfig struct {
	WhatsAppURL   string `mapstructure:"WHATSAPP_URL"`
	WhatsAppToken string `mapstructure:"WHATSAPP_TOKEN"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// cronParser accepts the six-field (with seconds) specs used throughout.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("SCHEME_DURATION_WEEKS", 52)
	viper.SetDefault("GRACE_WEEKS", 1)
	viper.SetDefault("CURRENCY_SYMBOL", "₹")
	viper.SetDefault("APP_NAME", "Finance Tracker")
	viper.SetDefault("TICK_CONCURRENCY", 8)
	viper.SetDefault("DISPATCH_TIMEOUT", "5s")
	viper.SetDefault("PROGRESS_CACHE_TTL", "60s")
	viper.SetDefault("SCHEDULER_REMINDER_SPEC", "0 0 9 * * MON")
	viper.SetDefault("SCHEDULER_REPORT_SPEC", "0 0 0 1 * *")
	viper.SetDefault("SCHEDULER_BACKUP_SPEC", "0 0 2 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Business.SchemeDurationWeeks <= 0 {
		return fmt.Errorf("SCHEME_DURATION_WEEKS must be greater than 0")
	}

	if c.Business.GraceWeeks < 0 {
		return fmt.Errorf("GRACE_WEEKS must not be negative")
	}

	if c.Business.TickConcurrency <= 0 {
		return fmt.Errorf("TICK_CONCURRENCY must be greater than 0")
	}

	for name, value := range map[string]string{
		"DISPATCH_TIMEOUT":     c.Business.DispatchTimeout,
		"PROGRESS_CACHE_TTL":   c.Business.ProgressCacheTTL,
		"HEALTH_CHECK_TIMEOUT": c.Health.Timeout,
		"SERVER_READ_TIMEOUT":  c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT": c.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", name, err)
		}
	}

	for name, spec := range map[string]string{
		"SCHEDULER_REMINDER_SPEC": c.Scheduler.ReminderSpec,
		"SCHEDULER_REPORT_SPEC":   c.Scheduler.ReportSpec,
		"SCHEDULER_BACKUP_SPEC":   c.Scheduler.BackupSpec,
	} {
		if _, err := cronParser.Parse(spec); err != nil {
			return fmt.Errorf("%s must be a valid cron expression: %w", name, err)
		}
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid timezone: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// DSN returns the Postgres connection string.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Name, c.User, c.Password, c.SSLMode)
}

// GetDispatchTimeout returns the channel send timeout as duration
func (c *Config) GetDispatchTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Business.DispatchTimeout)
	return timeout
}

// GetProgressCacheTTL returns the snapshot cache TTL as duration
func (c *Config) GetProgressCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Business.ProgressCacheTTL)
	return ttl
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Server.ReadTimeout)
	return timeout
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Server.WriteTimeout)
	return timeout
}

// GetSchedulerLocation returns the timezone cron specs are evaluated in
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, _ := time.LoadLocation(c.Scheduler.Timezone)
	return loc
}
