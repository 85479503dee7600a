package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Restaurant RestaurantConfig `toml:"restaurant"`
	Booking    BookingConfig    `toml:"booking"`
	Layout     LayoutConfig     `toml:"layout"`
	Stripe     StripeConfig     `toml:"stripe"`
	Mail       MailConfig       `toml:"mail"`
	Admin      AdminConfig      `toml:"admin"`
	Cron       CronConfig       `toml:"cron"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TelemetryConfig struct {
	Endpoint string `toml:"endpoint"`
	Insecure bool   `toml:"insecure"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Requests      int `toml:"requests"`
	WindowSeconds int `toml:"window_seconds"`
}

// Window длительность окна
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type RestaurantConfig struct {
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"`
	BaseURL  string `toml:"base_url"`
}

// Location часовой пояс ресторана
func (r RestaurantConfig) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

type BookingConfig struct {
	MaxPartySize          int    `toml:"max_party_size"`
	DepositMinPartySize   int    `toml:"deposit_min_party_size"`
	DepositAmountCents    int64  `toml:"deposit_amount_cents"`
	DepositCurrency       string `toml:"deposit_currency"`
	DepositHoldMinutes    int    `toml:"deposit_hold_minutes"`
	LockTTLMinutes        int    `toml:"lock_ttl_minutes"`
	ReviewDelayMinutes    int    `toml:"review_delay_minutes"`
	AlertLookAheadMinutes int    `toml:"alert_look_ahead_minutes"`
}

type LayoutConfig struct {
	PreferredLargeTables []int64 `toml:"preferred_large_tables"`
	AnchorTable          int64   `toml:"anchor_table"`
	BridgeTables         []int64 `toml:"bridge_tables"`
}

type StripeConfig struct {
	SecretKey     string `toml:"secret_key"`
	WebhookSecret string `toml:"webhook_secret"`
}

type MailConfig struct {
	Provider string `toml:"provider"`
	From     string `toml:"from"`

	SMTPHost     string `toml:"smtp_host"`
	SMTPPort     int    `toml:"smtp_port"`
	SMTPUsername string `toml:"smtp_username"`
	SMTPPassword string `toml:"smtp_password"`

	WebhookURL     string `toml:"webhook_url"`
	WebhookToken   string `toml:"webhook_token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout таймаут HTTP-шлюза
func (m MailConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

type AdminConfig struct {
	Token string `toml:"token"`
}

type CronConfig struct {
	Secret    string `toml:"secret"`
	Scheduler bool   `toml:"scheduler"`

	ExpireSchedule      string `toml:"expire_schedule"`
	TableChecksSchedule string `toml:"table_checks_schedule"`
	RemindersSchedule   string `toml:"reminders_schedule"`
	ReviewsSchedule     string `toml:"reviews_schedule"`
}

// Load читает TOML-файл, подгружает .env (если есть) и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env не обязателен
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "table-reservation-service"},
		RateLimit: RateLimitConfig{
			Requests:      5,
			WindowSeconds: 60,
		},
		Restaurant: RestaurantConfig{Timezone: "America/Toronto"},
		Mail: MailConfig{
			Provider:       "log",
			SMTPPort:       587,
			TimeoutSeconds: 10,
		},
		Booking: BookingConfig{
			MaxPartySize:          38,
			DepositMinPartySize:   10,
			DepositAmountCents:    5000,
			DepositCurrency:       "cad",
			DepositHoldMinutes:    30,
			LockTTLMinutes:        15,
			ReviewDelayMinutes:    120,
			AlertLookAheadMinutes: 180,
		},
		Cron: CronConfig{
			ExpireSchedule:      "*/5 * * * *",
			TableChecksSchedule: "* * * * *",
			RemindersSchedule:   "0 10 * * *",
			ReviewsSchedule:     "*/15 * * * *",
		},
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&cfg.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&cfg.Mail.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Mail.WebhookToken, "MAIL_WEBHOOK_TOKEN")
	setString(&cfg.Admin.Token, "ADMIN_TOKEN")
	setString(&cfg.Cron.Secret, "CRON_SECRET")
	setString(&cfg.Telemetry.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if _, err := c.Restaurant.Location(); err != nil {
		return fmt.Errorf("%w: restaurant.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Booking.MaxPartySize < 1 {
		return fmt.Errorf("%w: booking.max_party_size must be positive", ErrInvalidConfig)
	}
	if c.Booking.DepositMinPartySize < 1 {
		return fmt.Errorf("%w: booking.deposit_min_party_size must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Requests < 1 || c.RateLimit.WindowSeconds < 1 {
		return fmt.Errorf("%w: rate_limit requires positive requests and window", ErrInvalidConfig)
	}
	switch c.Mail.Provider {
	case "log", "smtp", "webhook":
	default:
		return fmt.Errorf("%w: mail.provider must be one of log, smtp, webhook", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	return nil
}
