package http

import (
	"net/http"
)

// Access valida o token apresentado em /acesso?token=...
// Falta de token é 400; assinatura inválida, expiração e payload
// malformado são todos 401 com mensagem própria. A distinção fina fica
// na trilha de auditoria, não na resposta.
func (h *Handler) Access(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	decision := h.svc.ValidateAccess(r.Context(), token, clientIP(r))

	if !decision.Success {
		status := http.StatusUnauthorized
		if decision.Missing {
			status = http.StatusBadRequest
		}
		WriteError(w, status, decision.Message, "")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"collaborator": decision.Collaborator,
		"tokenInfo":    decision.TokenInfo,
	})
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
