// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig         `mapstructure:"app"`
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Integrations IntegrationConfig `mapstructure:"integrations"`
	Outreach     OutreachConfig    `mapstructure:"outreach"`
	Override     OverrideConfig    `mapstructure:"override"`
	Logging      LoggingConfig     `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address      string `mapstructure:"address"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // seconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// IntegrationConfig holds settings for the delivery providers.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled            bool   `mapstructure:"enabled"`
			DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// OutreachConfig holds matchmaking and campaign telemetry settings.
type OutreachConfig struct {
	// Trailing window for campaign telemetry, in hours.
	WindowHours int `mapstructure:"window_hours"`
	// Reply-rate threshold (percent) above which a template group is a winner.
	WinnerReplyRate float64 `mapstructure:"winner_reply_rate"`
	// Reply-rate threshold (percent) below which a group is flagged suboptimal.
	SuboptimalReplyRate float64 `mapstructure:"suboptimal_reply_rate"`
	// Minimum volume before the suboptimal flag applies.
	SuboptimalMinVolume int `mapstructure:"suboptimal_min_volume"`
	// TTL for the cached matched feeds, in seconds.
	FeedCacheTTL int `mapstructure:"feed_cache_ttl"`
	// Path to the outreach template registry file. Optional.
	TemplateRegistryPath string `mapstructure:"template_registry_path"`
}

// OverrideConfig holds settings for the command console.
type OverrideConfig struct {
	PIN          string `mapstructure:"pin"`
	ConsoleToken string `mapstructure:"console_token"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
