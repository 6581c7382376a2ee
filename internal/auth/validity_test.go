package auth

import (
	"testing"
	"time"
)

func TestParseValidity(t *testing.T) {
	def := 24 * time.Hour

	cases := []struct {
		selector string
		want     time.Duration
	}{
		{"1h", time.Hour},
		{"8h", 8 * time.Hour},
		{"24h", 24 * time.Hour},
		{"48h", 48 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"", def},
		{"  ", def},
		{"24H", 24 * time.Hour},
	}

	for _, tc := range cases {
		got, err := ParseValidity(tc.selector, def)
		if err != nil {
			t.Fatalf("ParseValidity(%q): %v", tc.selector, err)
		}
		if got != tc.want {
			t.Fatalf("ParseValidity(%q) = %v, esperado %v", tc.selector, got, tc.want)
		}
	}
}

func TestParseValidityUnknownRejected(t *testing.T) {
	for _, selector := range []string{"3h", "1d", "forever", "0h"} {
		_, err := ParseValidity(selector, 24*time.Hour)
		if err == nil {
			t.Fatalf("ParseValidity(%q) aceitou seletor desconhecido", selector)
		}
		if !IsValidation(err) {
			t.Fatalf("ParseValidity(%q) = %v, esperado ValidationError", selector, err)
		}
	}
}
