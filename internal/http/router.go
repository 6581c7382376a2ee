package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/zapcrm/acesso/internal/access"
	"github.com/zapcrm/acesso/internal/config"
	httpmiddleware "github.com/zapcrm/acesso/internal/http/middleware"
	"github.com/zapcrm/acesso/internal/obs"
)

// Handler agrupa as dependências dos endpoints.
type Handler struct {
	cfg     *config.Config
	svc     *access.Service
	pool    *pgxpool.Pool // nil quando o diretório é em memória
	redis   *redis.Client // nil sem trilha Redis
	started time.Time
}

// NewRouter devolve o roteador configurado.
func NewRouter(cfg *config.Config, svc *access.Service, pool *pgxpool.Pool, redisClient *redis.Client) http.Handler {
	h := &Handler{
		cfg:     cfg,
		svc:     svc,
		pool:    pool,
		redis:   redisClient,
		started: time.Now(),
	}

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests, nil)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.SecurityHeaders)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))
	r.Use(obs.Instrument)
	r.Use(httpmiddleware.IPRateLimit(limiter))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", obs.Handler())
	r.Get("/acesso", h.Access)

	r.Group(func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminKey(cfg.AdminKeyHash))
		admin.Post("/api/auth/generate-token", h.GenerateToken)
		admin.Get("/api/collaborators/list", h.ListCollaborators)
	})

	return r
}

// Health responde liveness com uptime e versão.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "OK",
		"uptime":  time.Since(h.started).Seconds(),
		"version": obs.Version,
	})
}

// Ready valida as dependências configuradas (Postgres e Redis).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var dbErr, redisErr error
	if h.pool != nil {
		dbErr = h.pool.Ping(ctx)
	}
	if h.redis != nil {
		redisErr = h.redis.Ping(ctx).Err()
	}

	if dbErr != nil || redisErr != nil {
		WriteError(w, http.StatusServiceUnavailable, "dependências indisponíveis",
			h.errDetail(firstErr(dbErr, redisErr)))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"ready": true})
}

// errDetail expõe o erro bruto apenas fora de produção.
func (h *Handler) errDetail(err error) string {
	if err == nil || h.cfg.Production {
		return ""
	}
	return err.Error()
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
