package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zapcrm/acesso/internal/access"
	"github.com/zapcrm/acesso/internal/auth"
)

// GenerateToken emite um token de acesso com QR code para um colaborador.
func (h *Handler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	var input access.IssueInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido", "")
		return
	}

	result, err := h.svc.IssueToken(r.Context(), input)
	if err != nil {
		if auth.IsValidation(err) {
			WriteError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		log.Error().Err(err).Str("email", input.Email).Msg("falha ao emitir token")
		WriteError(w, http.StatusInternalServerError, "não foi possível emitir o token", h.errDetail(err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"token":        result.Token,
		"accessUrl":    result.AccessURL,
		"qrCode":       result.QRCode,
		"expiresAt":    result.ExpiresAt.Format(time.RFC3339),
		"collaborator": result.Collaborator,
	})
}
