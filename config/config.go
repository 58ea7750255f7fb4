package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisQuoteDB  int    `mapstructure:"REDIS_QUOTE_DB"`
	RedisIdemDB   int    `mapstructure:"REDIS_IDEM_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking engine knobs.
	QuoteTTLMinutes      int     `mapstructure:"QUOTE_TTL_MINUTES"`
	BufferMinutes        int     `mapstructure:"BUFFER_MINUTES"`
	MaxAggregateDiscount float64 `mapstructure:"MAX_AGGREGATE_DISCOUNT"`
	ReminderLeadHours    int     `mapstructure:"REMINDER_LEAD_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_QUOTE_DB", 0)
	viper.SetDefault("REDIS_IDEM_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "rentwheels")
	viper.SetDefault("QUOTE_TTL_MINUTES", 10)
	viper.SetDefault("BUFFER_MINUTES", 60)
	viper.SetDefault("MAX_AGGREGATE_DISCOUNT", 0.5)
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// QuoteTTL returns the configured quote lifetime.
func QuoteTTL() time.Duration {
	return time.Duration(AppConfig.QuoteTTLMinutes) * time.Minute
}

// BufferWindow returns the turnaround gap enforced between bookings.
func BufferWindow() time.Duration {
	return time.Duration(AppConfig.BufferMinutes) * time.Minute
}
