package http

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// ListCollaborators devolve o diretório com a validade calculada na leitura.
func (h *Handler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.ListCollaborators(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar colaboradores")
		WriteError(w, http.StatusInternalServerError, "não foi possível listar colaboradores", h.errDetail(err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"collaborators": listings,
	})
}
