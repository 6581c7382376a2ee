package http

import (
	"encoding/json"
	"net/http"
	"time"
)

// WriteJSON escreve a resposta carimbando o timestamp, presente em toda
// resposta do serviço.
func WriteJSON(w http.ResponseWriter, status int, payload map[string]any) {
	if _, ok := payload["timestamp"]; !ok {
		payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError escreve falha no formato plano {success:false, message}.
// detail só aparece fora de produção; o segredo de assinatura e stacks
// nunca chegam ao cliente.
func WriteError(w http.ResponseWriter, status int, message string, detail string) {
	payload := map[string]any{
		"success": false,
		"message": message,
	}
	if detail != "" {
		payload["detail"] = detail
	}
	WriteJSON(w, status, payload)
}
