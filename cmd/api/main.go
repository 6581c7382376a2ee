package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zapcrm/acesso/internal/access"
	"github.com/zapcrm/acesso/internal/audit"
	"github.com/zapcrm/acesso/internal/auth"
	"github.com/zapcrm/acesso/internal/collaborator"
	"github.com/zapcrm/acesso/internal/config"
	"github.com/zapcrm/acesso/internal/db"
	internalhttp "github.com/zapcrm/acesso/internal/http"
	"github.com/zapcrm/acesso/internal/obs"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api encerrada com erro")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	obs.Init()

	ctx := context.Background()

	var pool *pgxpool.Pool
	var directory collaborator.Directory
	if cfg.DBDSN != "" {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer pool.Close()
		directory = collaborator.NewRepository(pool)
	} else {
		log.Warn().Msg("DB_DSN ausente: diretório de colaboradores em memória (não durável)")
		directory = collaborator.NewMemoryDirectory(nil)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis parse: %w", err)
		}
		redisClient = redis.NewClient(redisOpts)
		defer redisClient.Close()
	} else {
		log.Warn().Msg("REDIS_URL ausente: trilha de auditoria apenas no log")
	}

	if cfg.AdminKeyHash == "" {
		log.Warn().Msg("ADMIN_KEY_HASH ausente: endpoints de operador sem autenticação")
	}

	trail := audit.NewTrail(redisClient, log.With().Str("component", "audit").Logger(), cfg.AuditTrailCap)
	tokens := auth.NewTokenService(cfg.JWTSecret, nil)
	svc := access.NewService(tokens, directory, trail, cfg.BaseURL, cfg.DefaultValidity, nil)

	handler := internalhttp.NewRouter(cfg, svc, pool, redisClient)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("API ouvindo em :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("encerrando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
