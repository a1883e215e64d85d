// Package config builds typed service configuration from environment
// variables so main stays lean. Every knob has a development default; only
// secrets and upstream locations must be provided in real deployments.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pkgstrings "github.com/john-holland/heycern-m87hey/pkg/platform/strings"
)

// Config is the root configuration for the service.
type Config struct {
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Render   RenderConfig
	SMTP     SMTPConfig
	Archive  ArchiveConfig
	Weather  WeatherConfig
	Auth     AuthConfig
	Report   ReportConfig
	Printer  PrinterConfig
	Quality  QualityConfig
	Site     SiteConfig
}

// HTTPConfig captures HTTP server level configuration.
type HTTPConfig struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// PostgresConfig configures the relational store. An empty URL switches the
// service to in-memory stores.
type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the snapshot cache. An empty URL disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures pipeline event publishing. Empty brokers switch the
// publisher to the log sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RenderConfig configures the image-model collaborator. With MockMode set
// (the default for development) no external calls are made.
type RenderConfig struct {
	GeminiAPIKey string
	Model        string
	MockMode     bool
}

// SMTPConfig configures report delivery. An empty host routes reports to the
// log sink instead of a mail server.
type SMTPConfig struct {
	Host string
	Port int
	From string
}

// ArchiveConfig locates the EHT archive upstream. Redshift overrides the
// lens redshift applied to spectra; zero means the M87 reference value.
type ArchiveConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	Redshift       float64
}

// WeatherConfig locates the NOAA/NWS upstreams for the conditions ETL.
type WeatherConfig struct {
	NOAABaseURL    string
	NWSBaseURL     string
	NOAAToken      string
	RequestTimeout time.Duration
}

// AuthConfig carries token issuance and admin credentials.
type AuthConfig struct {
	TokenSigningKey string
	TokenTTL        time.Duration
	AdminToken      string
}

// ReportConfig carries weekly report scheduling and recipients.
type ReportConfig struct {
	Recipients []string
	Interval   time.Duration
}

// PrinterConfig carries the office printer's job settings and the address
// supply refill requests go to.
type PrinterConfig struct {
	PaperSize         string
	ColorMode         string
	Resolution        string
	NotificationEmail string
}

// QualityConfig locates the improvement rule file.
type QualityConfig struct {
	RulesPath string
}

// SiteConfig is the observatory site used by the conditions ETL.
type SiteConfig struct {
	Latitude  float64
	Longitude float64
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            getEnv("M87HEY_ADDR", ":8080"),
			RequestTimeout:  getEnvDuration("M87HEY_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("M87HEY_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			URL:             os.Getenv("M87HEY_POSTGRES_URL"),
			MaxOpenConns:    getEnvInt("M87HEY_POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("M87HEY_POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("M87HEY_POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("M87HEY_REDIS_URL"),
			PoolSize:     getEnvInt("M87HEY_REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("M87HEY_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("M87HEY_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("M87HEY_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("M87HEY_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("M87HEY_KAFKA_BROKERS"),
			Topic:   getEnv("M87HEY_KAFKA_TOPIC", "m87hey.pipeline.events"),
		},
		Render: RenderConfig{
			GeminiAPIKey: os.Getenv("M87HEY_GEMINI_API_KEY"),
			Model:        getEnv("M87HEY_GEMINI_MODEL", "gemini-2.0-flash-exp"),
			MockMode:     getEnvBool("M87HEY_RENDER_MOCK", true),
		},
		SMTP: SMTPConfig{
			Host: os.Getenv("M87HEY_SMTP_HOST"),
			Port: getEnvInt("M87HEY_SMTP_PORT", 587),
			From: getEnv("M87HEY_SMTP_FROM", "service@project.org"),
		},
		Archive: ArchiveConfig{
			BaseURL:        getEnv("M87HEY_ARCHIVE_URL", "http://localhost:9081"),
			RequestTimeout: getEnvDuration("M87HEY_ARCHIVE_TIMEOUT", 10*time.Second),
			CacheTTL:       getEnvDuration("M87HEY_ARCHIVE_CACHE_TTL", 5*time.Minute),
			Redshift:       getEnvFloat("M87HEY_M87_REDSHIFT", 0),
		},
		Weather: WeatherConfig{
			NOAABaseURL:    getEnv("M87HEY_NOAA_URL", "http://localhost:9082"),
			NWSBaseURL:     getEnv("M87HEY_NWS_URL", "http://localhost:9082"),
			NOAAToken:      os.Getenv("M87HEY_NOAA_TOKEN"),
			RequestTimeout: getEnvDuration("M87HEY_WEATHER_TIMEOUT", 20*time.Second),
		},
		Auth: AuthConfig{
			TokenSigningKey: getEnv("M87HEY_TOKEN_SIGNING_KEY", "dev-secret-key-change-in-production"),
			TokenTTL:        getEnvDuration("M87HEY_TOKEN_TTL", 90*24*time.Hour),
			AdminToken:      os.Getenv("M87HEY_ADMIN_TOKEN"),
		},
		Report: ReportConfig{
			Recipients: getEnvList("M87HEY_REPORT_RECIPIENTS"),
			Interval:   getEnvDuration("M87HEY_REPORT_INTERVAL", 7*24*time.Hour),
		},
		Printer: PrinterConfig{
			PaperSize:         getEnv("M87HEY_PRINTER_PAPER_SIZE", "A3"),
			ColorMode:         getEnv("M87HEY_PRINTER_COLOR_MODE", "color"),
			Resolution:        getEnv("M87HEY_PRINTER_RESOLUTION", "1200dpi"),
			NotificationEmail: getEnv("M87HEY_PRINTER_NOTIFICATION_EMAIL", "john.gebhard.holland@gmail.com"),
		},
		Quality: QualityConfig{
			RulesPath: getEnv("M87HEY_QUALITY_RULES", "configs/improvement-rules.yaml"),
		},
		Site: SiteConfig{
			Latitude:  getEnvFloat("M87HEY_SITE_LAT", 37.7749),
			Longitude: getEnvFloat("M87HEY_SITE_LON", -122.4194),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blanks and
// duplicates so a recipient listed twice gets one mail.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	return pkgstrings.DedupeAndTrim(strings.Split(v, ","))
}
