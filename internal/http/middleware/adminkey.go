package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zapcrm/acesso/internal/auth"
)

// AdminKey exige o cabeçalho X-Admin-Key verificado contra o hash
// Argon2id configurado. Hash vazio desativa a exigência (deploys de
// processo único sem operadores externos).
func AdminKey(encodedHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if encodedHash == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				writeAdminKeyError(w, "chave de operador ausente")
				return
			}

			ok, err := auth.VerifyAdminKey(key, encodedHash)
			if err != nil || !ok {
				writeAdminKeyError(w, "chave de operador inválida")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAdminKeyError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   false,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
