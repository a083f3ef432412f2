// Package config loads process configuration from a .env file and the
// environment. It is read once at startup and passed by value.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Transport values.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Storage drivers.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Calendar modes.
const (
	CalendarStub  = "stub"
	CalendarStore = "store"
)

// Notification channels.
const (
	NotifyLog     = "log"
	NotifyWebhook = "webhook"
	NotifySMTP    = "smtp"
)

// Config is the process configuration, loaded once at startup.
type Config struct {
	ServerName     string `mapstructure:"SERVER_NAME" validate:"required"`
	RestaurantName string `mapstructure:"RESTAURANT_NAME" validate:"required"`
	Transport      string `mapstructure:"TRANSPORT" validate:"oneof=stdio http"`
	ServerHost     string `mapstructure:"SERVER_HOST"`
	ServerPort     int    `mapstructure:"SERVER_PORT" validate:"min=1,max=65535"`
	LogLevel       string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`

	DataDir       string `mapstructure:"DATA_DIR"`
	StorageDriver string `mapstructure:"STORAGE_DRIVER" validate:"oneof=sqlite postgres memory"`
	DatabaseURL   string `mapstructure:"DATABASE_URL" validate:"required_if=StorageDriver postgres"`
	CatalogPath   string `mapstructure:"CATALOG_PATH"`

	CalendarMode    string `mapstructure:"CALENDAR_MODE" validate:"oneof=stub store"`
	SeatingCapacity int    `mapstructure:"SEATING_CAPACITY" validate:"min=1"`
	SlotMinutes     int    `mapstructure:"SLOT_MINUTES" validate:"min=15,max=480"`
	BlockedDates    string `mapstructure:"BLOCKED_DATES"`

	NotifyChannel       string `mapstructure:"NOTIFY_CHANNEL" validate:"oneof=log webhook smtp"`
	NotifyOnReservation bool   `mapstructure:"NOTIFY_ON_RESERVATION"`
	N8NAPIURL           string `mapstructure:"N8N_API_URL" validate:"required_if=NotifyChannel webhook"`
	N8NAPIKey           string `mapstructure:"N8N_API_KEY"`
	SMTPHost            string `mapstructure:"SMTP_HOST" validate:"required_if=NotifyChannel smtp"`
	SMTPPort            int    `mapstructure:"SMTP_PORT" validate:"min=1,max=65535"`
	SMTPUser            string `mapstructure:"SMTP_USER"`
	SMTPPassword        string `mapstructure:"SMTP_PASSWORD"`
	AdminEmail          string `mapstructure:"ADMIN_EMAIL" validate:"required_if=NotifyChannel smtp"`
}

// Load reads ./.env (if present) and the environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom reads the given env file (if present) and the environment.
// Environment variables win over the file.
func LoadFrom(envFile string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read %s: %w", envFile, err)
	}

	v.SetDefault("SERVER_NAME", "cabrera-mcp")
	v.SetDefault("RESTAURANT_NAME", "La Cabrera")
	v.SetDefault("TRANSPORT", TransportStdio)
	v.SetDefault("SERVER_HOST", "127.0.0.1")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_DIR", "")
	v.SetDefault("STORAGE_DRIVER", StorageSQLite)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("CATALOG_PATH", "")
	v.SetDefault("CALENDAR_MODE", CalendarStub)
	v.SetDefault("SEATING_CAPACITY", 60)
	v.SetDefault("SLOT_MINUTES", 120)
	v.SetDefault("BLOCKED_DATES", "")
	v.SetDefault("NOTIFY_CHANNEL", NotifyLog)
	v.SetDefault("NOTIFY_ON_RESERVATION", false)
	v.SetDefault("N8N_API_URL", "")
	v.SetDefault("N8N_API_KEY", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("ADMIN_EMAIL", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.CalendarMode = strings.ToLower(strings.TrimSpace(cfg.CalendarMode))
	cfg.NotifyChannel = strings.ToLower(strings.TrimSpace(cfg.NotifyChannel))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return cfg, nil
}

// Validate rejects unknown enum values and settings missing for the
// selected drivers. Errors name the environment variable.
func (c Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})

	var problems []string
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}
	if c.N8NAPIURL != "" && v.Var(c.N8NAPIURL, "url") != nil {
		problems = append(problems, fmt.Sprintf("N8N_API_URL: %q is not a URL", c.N8NAPIURL))
	}
	if c.AdminEmail != "" && v.Var(c.AdminEmail, "email") != nil {
		problems = append(problems, fmt.Sprintf("ADMIN_EMAIL: %q is not an email address", c.AdminEmail))
	}
	for _, d := range c.BlockedDateList() {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			problems = append(problems, fmt.Sprintf("BLOCKED_DATES: %q is not YYYY-MM-DD", d))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", fe.Field(), requiredIfCondition(fe))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s fails %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
}

func requiredIfCondition(fe validator.FieldError) string {
	field, value, _ := strings.Cut(fe.Param(), " ")
	switch field {
	case "StorageDriver":
		field = "STORAGE_DRIVER"
	case "NotifyChannel":
		field = "NOTIFY_CHANNEL"
	}
	return field + "=" + value
}

// Addr is the listen address for the HTTP transport.
func (c Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// BlockedDateList splits BLOCKED_DATES on commas, dropping blanks.
func (c Config) BlockedDateList() []string {
	var out []string
	for _, d := range strings.Split(c.BlockedDates, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// SlotDuration is SLOT_MINUTES as a duration.
func (c Config) SlotDuration() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}
