package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(15*time.Minute, 3, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1"); !allowed {
			t.Fatalf("requisição %d negada dentro do limite", i+1)
		}
	}

	allowed, retryAfter := limiter.Allow("10.0.0.1")
	if allowed {
		t.Fatal("quarta requisição deveria ser negada")
	}
	if retryAfter <= 0 || retryAfter > 15*time.Minute {
		t.Fatalf("retryAfter = %v", retryAfter)
	}

	// Outra chave tem janela própria.
	if allowed, _ := limiter.Allow("10.0.0.2"); !allowed {
		t.Fatal("chave distinta não deveria ser afetada")
	}

	// Janela encerrada reabre a contagem.
	now = now.Add(15 * time.Minute)
	if allowed, _ := limiter.Allow("10.0.0.1"); !allowed {
		t.Fatal("janela nova deveria aceitar")
	}
}

func TestIPRateLimitResponse(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(time.Minute, 1, func() time.Time { return now })

	handler := IPRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/acesso", nil)
	req.Header.Set("X-Real-IP", "10.0.0.9")

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("primeira requisição: %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("segunda requisição: %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("Retry-After ausente")
	}
}
