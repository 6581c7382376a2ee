package config

import (
	"testing"
	"time"
)

const validSecret = "segredo-de-teste-com-32-caracteres!"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", validSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("Port = %d", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RateLimit.Window != 15*time.Minute || cfg.RateLimit.MaxRequests != 100 {
		t.Fatalf("RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.DefaultValidity != 24*time.Hour {
		t.Fatalf("DefaultValidity = %v", cfg.DefaultValidity)
	}
	if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "*" {
		t.Fatalf("AllowOrigins = %v", cfg.AllowOrigins)
	}
	if cfg.Production {
		t.Fatal("Production deveria ser false por default")
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "curto")

	if _, err := Load(); err == nil {
		t.Fatal("segredo curto deveria ser rejeitado")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "abc")

	if _, err := Load(); err == nil {
		t.Fatal("PORT inválida deveria ser rejeitada")
	}
}

func TestLoadRateLimitOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RateLimit.Window != time.Minute || cfg.RateLimit.MaxRequests != 10 {
		t.Fatalf("RateLimit = %+v", cfg.RateLimit)
	}
}

func TestLoadCORSAndEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGIN", "https://painel.exemplo.com.br, *.exemplo.com.br")
	t.Setenv("APP_ENV", "production")
	t.Setenv("BASE_URL", "https://acesso.exemplo.com.br/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Fatalf("AllowOrigins = %v", cfg.AllowOrigins)
	}
	if !cfg.Production {
		t.Fatal("APP_ENV=production não reconhecido")
	}
	if cfg.BaseURL != "https://acesso.exemplo.com.br" {
		t.Fatalf("BaseURL não normalizada: %q", cfg.BaseURL)
	}
}
