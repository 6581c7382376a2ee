package access

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapcrm/acesso/internal/audit"
	"github.com/zapcrm/acesso/internal/auth"
	"github.com/zapcrm/acesso/internal/collaborator"
)

const testSecret = "segredo-de-teste-com-32-caracteres!"

type fixture struct {
	svc   *Service
	now   *time.Time
	clock func() time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	now := start
	clock := func() time.Time { return now }

	tokens := auth.NewTokenService(testSecret, clock)
	directory := collaborator.NewMemoryDirectory(clock)
	trail := audit.NewTrail(nil, zerolog.Nop(), 100)
	svc := NewService(tokens, directory, trail, "https://acesso.exemplo.com.br/", 24*time.Hour, clock)

	return &fixture{svc: svc, now: &now, clock: clock}
}

func (f *fixture) advance(d time.Duration) {
	*f.now = f.now.Add(d)
}

func TestIssueThenValidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.IssueToken(ctx, IssueInput{
		Name:       "Maria Souza",
		Email:      "maria@empresa.com.br",
		Department: "vendas",
		Validity:   "1h",
	})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if !strings.HasPrefix(result.AccessURL, "https://acesso.exemplo.com.br/acesso?token=") {
		t.Fatalf("accessUrl inesperada: %q", result.AccessURL)
	}
	if !strings.HasPrefix(result.QRCode, "data:image/png;base64,") {
		t.Fatalf("qrCode não é data URL PNG: %.40q", result.QRCode)
	}
	if result.Collaborator.Department != "Vendas" {
		t.Fatalf("departamento não normalizado: %q", result.Collaborator.Department)
	}
	if !result.ExpiresAt.Equal(f.clock().Add(time.Hour)) {
		t.Fatalf("expiresAt = %v", result.ExpiresAt)
	}

	decision := f.svc.ValidateAccess(ctx, result.Token, "10.0.0.1")
	if !decision.Success {
		t.Fatalf("validação falhou: %s", decision.Message)
	}
	if decision.Collaborator.Name != "Maria Souza" || decision.Collaborator.Department != "Vendas" {
		t.Fatalf("claims divergentes: %+v", decision.Collaborator)
	}
	if !decision.TokenInfo.ExpiresAt.Equal(result.ExpiresAt) {
		t.Fatalf("tokenInfo.expiresAt = %v", decision.TokenInfo.ExpiresAt)
	}
}

func TestValidateAfterExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.IssueToken(ctx, IssueInput{
		Name: "Maria Souza", Email: "maria@empresa.com.br", Validity: "1h",
	})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if d := f.svc.ValidateAccess(ctx, result.Token, ""); !d.Success {
		t.Fatalf("validação imediata falhou: %s", d.Message)
	}

	f.advance(time.Hour + time.Minute)

	decision := f.svc.ValidateAccess(ctx, result.Token, "")
	if decision.Success {
		t.Fatal("token expirado foi aceito")
	}
	if decision.Message != auth.ErrExpiredToken.Error() {
		t.Fatalf("mensagem = %q, esperada mensagem de expiração", decision.Message)
	}
	if decision.Missing {
		t.Fatal("expiração marcada como token ausente")
	}
}

func TestValidateMissingDistinctFromInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing := f.svc.ValidateAccess(ctx, "", "")
	if missing.Success || !missing.Missing {
		t.Fatalf("decisão para token ausente: %+v", missing)
	}
	if missing.Message != auth.ErrMissingToken.Error() {
		t.Fatalf("mensagem = %q", missing.Message)
	}

	invalid := f.svc.ValidateAccess(ctx, "cabecalho.corpo.assinatura", "")
	if invalid.Success || invalid.Missing {
		t.Fatalf("decisão para token inválido: %+v", invalid)
	}
	if invalid.Message == missing.Message {
		t.Fatal("mensagens de ausente e inválido devem diferir")
	}
}

func TestIssueValidationErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []IssueInput{
		{Name: "", Email: "a@b.com"},
		{Name: "   ", Email: "a@b.com"},
		{Name: "Ana", Email: ""},
		{Name: "Ana", Email: "não é e-mail"},
		{Name: "Ana", Email: "a@b.com", Validity: "3h"},
	}

	for _, input := range cases {
		if _, err := f.svc.IssueToken(ctx, input); !auth.IsValidation(err) {
			t.Fatalf("IssueToken(%+v) = %v, esperado ValidationError", input, err)
		}
	}
}

func TestTwoIssuancesBothValid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.IssueToken(ctx, IssueInput{Name: "Ana", Email: "ana@x.com", Validity: "8h"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	second, err := f.svc.IssueToken(ctx, IssueInput{Name: "Ana", Email: "ana@x.com", Validity: "8h"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Semântica de portador: emitir de novo não invalida o token anterior.
	if d := f.svc.ValidateAccess(ctx, first.Token, ""); !d.Success {
		t.Fatalf("primeiro token rejeitado: %s", d.Message)
	}
	if d := f.svc.ValidateAccess(ctx, second.Token, ""); !d.Success {
		t.Fatalf("segundo token rejeitado: %s", d.Message)
	}
}

func TestListComputesIsValidAtReadTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.IssueToken(ctx, IssueInput{Name: "Ana", Email: "ana@x.com", Validity: "1h"}); err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	listings, err := f.svc.ListCollaborators(ctx)
	if err != nil {
		t.Fatalf("ListCollaborators: %v", err)
	}
	if len(listings) != 1 || !listings[0].IsValid {
		t.Fatalf("listagem dentro da validade: %+v", listings)
	}

	f.advance(2 * time.Hour)

	listings, err = f.svc.ListCollaborators(ctx)
	if err != nil {
		t.Fatalf("ListCollaborators: %v", err)
	}
	if listings[0].IsValid {
		t.Fatal("isValid continuou true após a expiração, sem reemissão")
	}
}

func TestIssueDefaultValidity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.IssueToken(ctx, IssueInput{Name: "Ana", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if !result.ExpiresAt.Equal(f.clock().Add(24 * time.Hour)) {
		t.Fatalf("validade default: expiresAt = %v", result.ExpiresAt)
	}
}
