package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every key so the host environment cannot leak in.
// Viper treats an empty variable as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVER_NAME", "RESTAURANT_NAME", "TRANSPORT", "SERVER_HOST", "SERVER_PORT", "LOG_LEVEL",
		"DATA_DIR", "STORAGE_DRIVER", "DATABASE_URL", "CATALOG_PATH", "CALENDAR_MODE",
		"SEATING_CAPACITY", "SLOT_MINUTES", "BLOCKED_DATES", "NOTIFY_CHANNEL",
		"NOTIFY_ON_RESERVATION", "N8N_API_URL", "N8N_API_KEY", "SMTP_HOST", "SMTP_PORT",
		"SMTP_USER", "SMTP_PASSWORD", "ADMIN_EMAIL",
	} {
		t.Setenv(k, "")
	}
}

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(missingEnvFile(t))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.ServerName != "cabrera-mcp" {
		t.Errorf("ServerName = %q", cfg.ServerName)
	}
	if cfg.Transport != TransportStdio {
		t.Errorf("Transport = %q, want stdio", cfg.Transport)
	}
	if cfg.StorageDriver != StorageSQLite {
		t.Errorf("StorageDriver = %q, want sqlite", cfg.StorageDriver)
	}
	if cfg.CalendarMode != CalendarStub {
		t.Errorf("CalendarMode = %q, want stub", cfg.CalendarMode)
	}
	if cfg.NotifyChannel != NotifyLog {
		t.Errorf("NotifyChannel = %q, want log", cfg.NotifyChannel)
	}
	if cfg.SeatingCapacity != 60 || cfg.SlotMinutes != 120 || cfg.SMTPPort != 587 {
		t.Errorf("numeric defaults: %+v", cfg)
	}
	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.SlotDuration() != 2*time.Hour {
		t.Errorf("SlotDuration = %v", cfg.SlotDuration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFrom_EnvFileAndOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "RESTAURANT_NAME=Cabrera Norte\nSERVER_PORT=9090\nTRANSPORT=HTTP\nNOTIFY_ON_RESERVATION=true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERVER_PORT", "9191")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.RestaurantName != "Cabrera Norte" {
		t.Errorf("RestaurantName = %q", cfg.RestaurantName)
	}
	if cfg.ServerPort != 9191 {
		t.Errorf("ServerPort = %d, environment should win over file", cfg.ServerPort)
	}
	if cfg.Transport != TransportHTTP {
		t.Errorf("Transport = %q, want normalized http", cfg.Transport)
	}
	if !cfg.NotifyOnReservation {
		t.Error("NotifyOnReservation should be true")
	}
}

func TestBlockedDateList(t *testing.T) {
	cfg := Config{BlockedDates: " 2025-12-24, ,2025-12-25 ,"}
	got := cfg.BlockedDateList()
	if len(got) != 2 || got[0] != "2025-12-24" || got[1] != "2025-12-25" {
		t.Errorf("BlockedDateList = %v", got)
	}
	if (Config{}).BlockedDateList() != nil {
		t.Error("empty BLOCKED_DATES should give nil")
	}
}

func validConfig() Config {
	return Config{
		ServerName:      "cabrera-mcp",
		RestaurantName:  "La Cabrera",
		Transport:       TransportStdio,
		ServerHost:      "127.0.0.1",
		ServerPort:      8080,
		LogLevel:        "info",
		StorageDriver:   StorageSQLite,
		CalendarMode:    CalendarStub,
		SeatingCapacity: 60,
		SlotMinutes:     120,
		NotifyChannel:   NotifyLog,
		SMTPPort:        587,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown transport", func(c *Config) { c.Transport = "grpc" }, "TRANSPORT must be one of"},
		{"unknown driver", func(c *Config) { c.StorageDriver = "mysql" }, "STORAGE_DRIVER must be one of"},
		{"postgres without url", func(c *Config) { c.StorageDriver = StoragePostgres }, "DATABASE_URL is required when STORAGE_DRIVER=postgres"},
		{"postgres with url", func(c *Config) {
			c.StorageDriver = StoragePostgres
			c.DatabaseURL = "postgres://localhost/cabrera"
		}, ""},
		{"webhook without url", func(c *Config) { c.NotifyChannel = NotifyWebhook }, "N8N_API_URL is required when NOTIFY_CHANNEL=webhook"},
		{"webhook bad url", func(c *Config) {
			c.NotifyChannel = NotifyWebhook
			c.N8NAPIURL = "not a url"
		}, "N8N_API_URL"},
		{"smtp without host", func(c *Config) {
			c.NotifyChannel = NotifySMTP
			c.AdminEmail = "admin@example.com"
		}, "SMTP_HOST is required when NOTIFY_CHANNEL=smtp"},
		{"smtp bad admin email", func(c *Config) {
			c.NotifyChannel = NotifySMTP
			c.SMTPHost = "mail.example.com"
			c.AdminEmail = "admin"
		}, "ADMIN_EMAIL"},
		{"zero capacity", func(c *Config) { c.SeatingCapacity = 0 }, "SEATING_CAPACITY"},
		{"bad blocked date", func(c *Config) { c.BlockedDates = "24/12/2025" }, "BLOCKED_DATES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
