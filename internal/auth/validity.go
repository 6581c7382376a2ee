package auth

import (
	"strings"
	"time"
)

// validityWindows são as janelas de validade aceitas na emissão.
var validityWindows = map[string]time.Duration{
	"1h":  time.Hour,
	"8h":  8 * time.Hour,
	"24h": 24 * time.Hour,
	"48h": 48 * time.Hour,
	"7d":  7 * 24 * time.Hour,
}

// ParseValidity resolve o seletor de validade para uma duração.
// Vazio usa o default configurado; um seletor desconhecido é rejeitado
// em vez de cair silenciosamente no default.
func ParseValidity(selector string, def time.Duration) (time.Duration, error) {
	selector = strings.ToLower(strings.TrimSpace(selector))
	if selector == "" {
		return def, nil
	}
	if dur, ok := validityWindows[selector]; ok {
		return dur, nil
	}
	return 0, NewValidationError("validade desconhecida: " + selector + " (aceitas: 1h, 8h, 24h, 48h, 7d)")
}
