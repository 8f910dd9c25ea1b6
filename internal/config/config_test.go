package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "accounts-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "accounts-auth")
	}
	if cfg.JWTAudience != "accounts-api" {
		t.Errorf("JWTAudience = %q, want %q", cfg.JWTAudience, "accounts-api")
	}
	if cfg.JWTAccessTTL != "15m" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "15m")
	}
	if cfg.RefreshSessionTTL != "720h" {
		t.Errorf("RefreshSessionTTL = %q, want %q", cfg.RefreshSessionTTL, "720h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.EventsKafkaTopic != "account-security-events" {
		t.Errorf("EventsKafkaTopic = %q, want default", cfg.EventsKafkaTopic)
	}
	if cfg.MailFrom != "no-reply@accounts.local" {
		t.Errorf("MailFrom = %q, want default", cfg.MailFrom)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("BCRYPT_COST", "99")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject BCRYPT_COST outside 4-31")
	}
}

func TestAccessTTL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{"valid", "30m", 30 * time.Minute},
		{"invalid", "bogus", 15 * time.Minute},
		{"empty", "", 15 * time.Minute},
		{"negative", "-5m", 15 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{JWTAccessTTL: tt.raw}
			if got := c.AccessTTL(); got != tt.want {
				t.Errorf("AccessTTL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefreshTTL(t *testing.T) {
	c := &Config{RefreshSessionTTL: "48h"}
	if got := c.RefreshTTL(); got != 48*time.Hour {
		t.Errorf("RefreshTTL() = %v, want 48h", got)
	}
	c = &Config{RefreshSessionTTL: "nope"}
	if got := c.RefreshTTL(); got != 720*time.Hour {
		t.Errorf("RefreshTTL() fallback = %v, want 720h", got)
	}
}

func TestEventsKafkaBrokersList(t *testing.T) {
	c := &Config{EventsKafkaBrokers: "localhost:9092, broker2:9092 ,,"}
	got := c.EventsKafkaBrokersList()
	if len(got) != 2 {
		t.Fatalf("brokers = %v, want 2 entries", got)
	}
	if got[0] != "localhost:9092" || got[1] != "broker2:9092" {
		t.Errorf("brokers = %v", got)
	}
	var nilCfg *Config
	if nilCfg.EventsKafkaBrokersList() != nil {
		t.Error("nil config should return nil broker list")
	}
	empty := &Config{}
	if empty.EventsKafkaBrokersList() != nil {
		t.Error("empty brokers should return nil")
	}
}
