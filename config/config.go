package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Record store selection: "mongo" or "supabase".
	RecordStore  string `mapstructure:"RECORD_STORE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	SupabaseURL  string `mapstructure:"SUPABASE_URL"`
	SupabaseKey  string `mapstructure:"SUPABASE_KEY"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Identity widget token verification and session lifetime.
	IdentityJWTSecret string        `mapstructure:"IDENTITY_JWT_SECRET"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`

	// Booking behaviour.
	WizardIdleTTL       time.Duration `mapstructure:"WIZARD_IDLE_TTL"`
	CatalogCacheTTL     time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
	BookingWindowMonths int           `mapstructure:"BOOKING_WINDOW_MONTHS"`
	TimeSlots           []string      `mapstructure:"TIME_SLOTS"`
	Timezone            string        `mapstructure:"TIMEZONE"`
}

var AppConfig Config

// DefaultTimeSlots is the appointment label set offered for every bookable date.
var DefaultTimeSlots = []string{"09:00 AM", "10:00 AM", "11:00 AM", "01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM"}

func LoadConfig() {
	// A local .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	cfg, err := decode(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("RECORD_STORE", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "labbook")
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_KEY", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("IDENTITY_JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("WIZARD_IDLE_TTL", "30m")
	v.SetDefault("CATALOG_CACHE_TTL", "5m")
	v.SetDefault("BOOKING_WINDOW_MONTHS", 3)
	v.SetDefault("TIME_SLOTS", strings.Join(DefaultTimeSlots, ","))
	v.SetDefault("TIMEZONE", "Local")
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	// Env vars arrive as one comma separated string.
	cfg.TimeSlots = splitList(strings.Join(cfg.TimeSlots, ","))
	if len(cfg.TimeSlots) == 0 {
		cfg.TimeSlots = append([]string(nil), DefaultTimeSlots...)
	}
	if cfg.BookingWindowMonths <= 0 {
		cfg.BookingWindowMonths = 3
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Location resolves the configured timezone, falling back to local time.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using local time", c.Timezone)
		return time.Local
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
