package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	BaseURL         string
	JWTSecret       string
	DBDSN           string
	RedisURL        string
	AllowOrigins    []string
	RateLimit       RateLimitConfig
	DefaultValidity time.Duration
	AdminKeyHash    string
	AuditTrailCap   int64
	Production      bool
}

// RateLimitConfig descreve uma janela fixa de contagem por cliente.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(getEnv("BASE_URL", "http://localhost:8080")), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("BASE_URL obrigatória")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	// DB_DSN e REDIS_URL são opcionais: sem Postgres o diretório de
	// colaboradores fica em memória (não durável); sem Redis a trilha de
	// auditoria vai apenas para o log estruturado.
	cfg.DBDSN = strings.TrimSpace(getEnv("DB_DSN", ""))
	cfg.RedisURL = strings.TrimSpace(getEnv("REDIS_URL", ""))

	allowOrigins := strings.Split(getEnv("CORS_ORIGIN", "*"), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	windowMS, err := parseIntEnv("RATE_LIMIT_WINDOW_MS", int(15*time.Minute/time.Millisecond))
	if err != nil {
		return nil, err
	}
	maxRequests, err := parseIntEnv("RATE_LIMIT_MAX_REQUESTS", 100)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit = RateLimitConfig{
		Window:      time.Duration(windowMS) * time.Millisecond,
		MaxRequests: maxRequests,
	}

	defaultValidity, err := parseDurationEnv("TOKEN_DEFAULT_VALIDITY", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.DefaultValidity = defaultValidity

	cfg.AdminKeyHash = strings.TrimSpace(getEnv("ADMIN_KEY_HASH", ""))

	auditCap, err := parseIntEnv("AUDIT_TRAIL_CAP", 1000)
	if err != nil {
		return nil, err
	}
	cfg.AuditTrailCap = int64(auditCap)

	cfg.Production = strings.EqualFold(getEnv("APP_ENV", "development"), "production")

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseIntEnv(key string, def int) (int, error) {
	val := strings.TrimSpace(getEnv(key, ""))
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, errors.New(key + " inválido")
	}
	return n, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
