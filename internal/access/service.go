package access

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/zapcrm/acesso/internal/audit"
	"github.com/zapcrm/acesso/internal/auth"
	"github.com/zapcrm/acesso/internal/collaborator"
	"github.com/zapcrm/acesso/internal/obs"
	"github.com/zapcrm/acesso/internal/qr"
)

// Service orquestra emissão e validação de tokens de acesso.
// Emissão e validação são funções de (entrada, relógio, segredo); o único
// estado compartilhado é o diretório (upsert idempotente) e a trilha de
// auditoria (append-only), ambos tolerantes a escritores concorrentes.
type Service struct {
	tokens          *auth.TokenService
	directory       collaborator.Directory
	trail           *audit.Trail
	baseURL         string
	defaultValidity time.Duration
	now             func() time.Time
}

// NewService cria o serviço com dependências explícitas.
// Um relógio nil usa time.Now (UTC).
func NewService(tokens *auth.TokenService, directory collaborator.Directory, trail *audit.Trail, baseURL string, defaultValidity time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		tokens:          tokens,
		directory:       directory,
		trail:           trail,
		baseURL:         strings.TrimRight(baseURL, "/"),
		defaultValidity: defaultValidity,
		now:             now,
	}
}

// IssueInput são os campos aceitos na emissão.
type IssueInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Validity   string `json:"validity"`
}

// IssueResult é o artefato completo devolvido ao operador.
type IssueResult struct {
	Token        string                     `json:"token"`
	AccessURL    string                     `json:"accessUrl"`
	QRCode       string                     `json:"qrCode"`
	ExpiresAt    time.Time                  `json:"expiresAt"`
	Collaborator *collaborator.Collaborator `json:"collaborator"`
}

// IssueToken valida a entrada, registra o colaborador no diretório e
// emite o token com o QR code do link de acesso.
func (s *Service) IssueToken(ctx context.Context, input IssueInput) (*IssueResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, auth.NewValidationError("name é obrigatório")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, auth.NewValidationError("email é obrigatório")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, auth.NewValidationError("email inválido")
	}

	department := collaborator.NormalizeDepartment(input.Department)

	validity, err := auth.ParseValidity(input.Validity, s.defaultValidity)
	if err != nil {
		return nil, err
	}

	token, issuedAt, expiresAt, err := s.tokens.Issue(email, name, department, validity)
	if err != nil {
		return nil, err
	}

	registered, err := s.directory.RegisterIssuance(ctx, collaborator.IssuanceInput{
		Name:       name,
		Email:      email,
		Department: department,
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
	})
	if err != nil {
		return nil, err
	}

	accessURL := s.baseURL + "/acesso?token=" + url.QueryEscape(token)
	qrCode, err := qr.DataURL(accessURL)
	if err != nil {
		return nil, err
	}

	obs.TokenIssued()

	return &IssueResult{
		Token:        token,
		AccessURL:    accessURL,
		QRCode:       qrCode,
		ExpiresAt:    expiresAt,
		Collaborator: registered,
	}, nil
}

// Holder são as claims decodificadas apresentadas ao portador autorizado.
type Holder struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// TokenInfo expõe a janela de validade do token aceito.
type TokenInfo struct {
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Decision é o resultado efêmero de uma validação; nunca persistida como
// entidade, apenas registrada na trilha.
type Decision struct {
	Success      bool
	Collaborator *Holder
	TokenInfo    *TokenInfo
	Message      string
	Missing      bool
}

// ValidateAccess decide a autorização para o token apresentado e registra
// o desfecho na trilha de auditoria. Nunca devolve erro ao transporte:
// toda falha vira uma Decision negativa com mensagem própria.
func (s *Service) ValidateAccess(ctx context.Context, token, clientIP string) Decision {
	claims, err := s.tokens.Validate(token)
	timestamp := s.now()

	if err != nil {
		outcome := outcomeFor(err)
		obs.AccessDecision(string(outcome))
		s.trail.Record(ctx, audit.Entry{
			Timestamp: timestamp,
			Outcome:   outcome,
			Token:     strings.TrimSpace(token),
			IP:        clientIP,
		})
		return Decision{
			Success: false,
			Message: err.Error(),
			Missing: errors.Is(err, auth.ErrMissingToken),
		}
	}

	obs.AccessDecision(string(audit.OutcomeGranted))
	s.trail.Record(ctx, audit.Entry{
		Timestamp:  timestamp,
		Outcome:    audit.OutcomeGranted,
		Email:      claims.Subject,
		Name:       claims.Name,
		Department: claims.Department,
		IP:         clientIP,
	})

	return Decision{
		Success: true,
		Collaborator: &Holder{
			Name:       claims.Name,
			Email:      claims.Subject,
			Department: claims.Department,
		},
		TokenInfo: &TokenInfo{
			IssuedAt:  claims.IssuedAt.Time,
			ExpiresAt: claims.ExpiresAt.Time,
		},
	}
}

// Listing é a visão operacional de um colaborador com validade calculada
// no momento da leitura, nunca armazenada.
type Listing struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	IssuedAt   *time.Time `json:"issuedAt"`
	ExpiresAt  *time.Time `json:"expiresAt"`
	IsValid    bool       `json:"isValid"`
}

// ListCollaborators devolve o diretório com isValid derivado do relógio.
func (s *Service) ListCollaborators(ctx context.Context) ([]Listing, error) {
	records, err := s.directory.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	listings := make([]Listing, 0, len(records))
	for _, rec := range records {
		listing := Listing{
			Name:       rec.Name,
			Email:      rec.Email,
			Department: rec.Department,
			IssuedAt:   rec.LastIssuedAt,
			ExpiresAt:  rec.LastExpiresAt,
		}
		if rec.LastExpiresAt != nil {
			listing.IsValid = now.Before(*rec.LastExpiresAt)
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func outcomeFor(err error) audit.Outcome {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return audit.OutcomeMissingToken
	case errors.Is(err, auth.ErrExpiredToken):
		return audit.OutcomeExpired
	case errors.Is(err, auth.ErrMalformedToken):
		return audit.OutcomeMalformed
	default:
		return audit.OutcomeInvalidSignature
	}
}
