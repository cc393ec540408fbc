package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN builds a lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MQTTConfig settings for the optional sensor ingestion consumer.
type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string // e.g. "farm/+/readings"
	QoS      byte
}

// WeatherConfig external forecast provider settings.
// When APIKey is empty the service falls back to synthetic forecasts.
type WeatherConfig struct {
	ProviderURL string
	APIKey      string
	Timeout     time.Duration
}

// RulesConfig thresholds for the environmental rule engine.
type RulesConfig struct {
	DefaultMoistureThreshold float64       // % below which auto irrigation triggers
	DefaultDuration          int           // minutes per irrigation session
	MinIrrigationInterval    time.Duration // cooldown between auto-triggered starts
	DedupWindow              time.Duration // alert lockout window
	LitersPerMinute          float64       // fixed linear flow estimate
	ForecastAlertDays        int           // forecast days scanned for weather alerts
}

// Config smartfarm service configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    RedisConfig
	MQTT     MQTTConfig
	Weather  WeatherConfig
	Rules    RulesConfig
	Session  struct {
		TTL time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "smartfarm")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "smartfarm-ingest")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "farm/+/readings")
	cfg.MQTT.QoS = 1

	cfg.Weather.ProviderURL = getEnv("WEATHER_PROVIDER_URL", "")
	cfg.Weather.APIKey = getEnv("WEATHER_API_KEY", "")
	cfg.Weather.Timeout = 10 * time.Second

	cfg.Rules.DefaultMoistureThreshold = parseFloat(getEnv("RULES_MOISTURE_THRESHOLD", "30"), 30)
	cfg.Rules.DefaultDuration = parseInt(getEnv("RULES_IRRIGATION_DURATION", "30"), 30)
	cfg.Rules.MinIrrigationInterval = time.Duration(parseInt(getEnv("RULES_MIN_IRRIGATION_INTERVAL_MIN", "120"), 120)) * time.Minute
	cfg.Rules.DedupWindow = time.Duration(parseInt(getEnv("RULES_DEDUP_WINDOW_HOURS", "24"), 24)) * time.Hour
	cfg.Rules.LitersPerMinute = 10
	cfg.Rules.ForecastAlertDays = 3

	cfg.Session.TTL = time.Duration(parseInt(getEnv("SESSION_TTL_HOURS", "24"), 24)) * time.Hour

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
