package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter conta requisições por chave em janela fixa.
// Estourar o limite devolve 429 com dica de retry, nunca erro fatal.
type RateLimiter struct {
	window time.Duration
	max    int
	mu     sync.Mutex
	store  map[string]*windowEntry
	now    func() time.Time
}

type windowEntry struct {
	start time.Time
	count int
}

// NewRateLimiter cria o limitador; now nil usa time.Now.
func NewRateLimiter(window time.Duration, max int, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		window: window,
		max:    max,
		store:  make(map[string]*windowEntry),
		now:    now,
	}
}

// Allow consome uma unidade da janela da chave; devolve também quanto
// falta para a janela reabrir quando negado.
func (r *RateLimiter) Allow(key string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	entry, ok := r.store[key]
	if !ok || now.Sub(entry.start) >= r.window {
		r.store[key] = &windowEntry{start: now, count: 1}
		r.prune(now)
		return true, 0
	}

	if entry.count >= r.max {
		return false, r.window - now.Sub(entry.start)
	}

	entry.count++
	return true, 0
}

// prune remove janelas já encerradas; chamado sob o mutex.
func (r *RateLimiter) prune(now time.Time) {
	for key, entry := range r.store {
		if now.Sub(entry.start) >= r.window {
			delete(r.store, key)
		}
	}
}

// IPRateLimit aplica a janela fixa usando o IP remoto como chave.
func IPRateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, retryAfter := limiter.Allow(realIPFromRequest(r))
			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				writeRateLimitError(w, seconds)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func realIPFromRequest(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); ip != "" {
		parts := strings.Split(ip, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeRateLimitError(w http.ResponseWriter, retryAfterSeconds int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":    false,
		"message":    "Limite de requisições excedido, tente novamente em instantes",
		"retryAfter": retryAfterSeconds,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
