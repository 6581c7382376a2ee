package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Outcome classifica o desfecho de uma apresentação de token.
type Outcome string

const (
	OutcomeGranted          Outcome = "granted"
	OutcomeMissingToken     Outcome = "missing_token"
	OutcomeInvalidSignature Outcome = "invalid_signature"
	OutcomeExpired          Outcome = "expired"
	OutcomeMalformed        Outcome = "malformed"
)

// Entry é um registro da trilha de auditoria. Em caso de falha o token
// apresentado é registrado; o segredo de assinatura nunca aparece aqui.
type Entry struct {
	Timestamp  time.Time `json:"ts"`
	Outcome    Outcome   `json:"outcome"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name,omitempty"`
	Department string    `json:"department,omitempty"`
	Token      string    `json:"token,omitempty"`
	IP         string    `json:"ip,omitempty"`
}

// redisCommander é o subconjunto do cliente Redis usado pela trilha,
// isolado para permitir stubs em teste.
type redisCommander interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
}

const trailKey = "acesso:auditoria"

// Trail registra decisões de acesso no log estruturado e, quando o Redis
// está configurado, em uma lista limitada para consulta operacional.
type Trail struct {
	redis  redisCommander
	logger zerolog.Logger
	cap    int64
}

// NewTrail cria a trilha; redisClient pode ser nil (apenas log).
func NewTrail(redisClient *redis.Client, logger zerolog.Logger, cap int64) *Trail {
	t := &Trail{logger: logger, cap: cap}
	if redisClient != nil {
		t.redis = redisClient
	}
	return t
}

// newTrailWithCommander existe para os testes injetarem um stub.
func newTrailWithCommander(cmd redisCommander, logger zerolog.Logger, cap int64) *Trail {
	return &Trail{redis: cmd, logger: logger, cap: cap}
}

// Record grava a entrada. Falha de Redis nunca bloqueia a decisão de
// acesso: vira um warning no log.
func (t *Trail) Record(ctx context.Context, entry Entry) {
	event := t.logger.Info().
		Time("ts", entry.Timestamp).
		Str("outcome", string(entry.Outcome))
	if entry.Email != "" {
		event = event.Str("email", entry.Email).
			Str("name", entry.Name).
			Str("department", entry.Department)
	}
	if entry.Token != "" {
		event = event.Str("token", entry.Token)
	}
	if entry.IP != "" {
		event = event.Str("ip", entry.IP)
	}
	event.Msg("access_decision")

	if t.redis == nil {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		t.logger.Warn().Err(err).Msg("auditoria: falha ao serializar entrada")
		return
	}

	if err := t.redis.LPush(ctx, trailKey, payload).Err(); err != nil {
		t.logger.Warn().Err(err).Msg("auditoria: falha ao gravar no Redis")
		return
	}
	if err := t.redis.LTrim(ctx, trailKey, 0, t.cap-1).Err(); err != nil {
		t.logger.Warn().Err(err).Msg("auditoria: falha ao limitar trilha")
	}
}
