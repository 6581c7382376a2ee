package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims representa as informações presentes em um token de acesso.
// O subject é o e-mail do colaborador.
type AccessClaims struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	jwt.RegisteredClaims
}

// TokenService encapsula geração e validação de tokens de acesso.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService cria o serviço com segredo e relógio injetado.
// Um relógio nil usa time.Now (UTC).
func NewTokenService(secret string, now func() time.Time) *TokenService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &TokenService{secret: []byte(secret), now: now}
}

// Issue cria um JWT HS256 com validade informada.
// O jti fica disponível para uma futura denylist de revogação.
func (s *TokenService) Issue(email, name, department string, validity time.Duration) (token string, issuedAt, expiresAt time.Time, err error) {
	issuedAt = s.now().Truncate(time.Second)
	expiresAt = issuedAt.Add(validity)

	claims := AccessClaims{
		Name:       name,
		Department: department,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}

	return signed, issuedAt, expiresAt, nil
}

// Validate verifica assinatura, expiração e claims obrigatórias, nesta ordem.
// Cada falha mapeia para um erro distinto da taxonomia para fins de auditoria.
func (s *TokenService) Validate(tokenString string) (*AccessClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, ErrMalformedToken
		default:
			// Assinatura inválida, método inesperado ou payload adulterado.
			return nil, ErrInvalidSignature
		}
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}

	if strings.TrimSpace(claims.Subject) == "" ||
		strings.TrimSpace(claims.Name) == "" ||
		strings.TrimSpace(claims.Department) == "" ||
		claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrMalformedToken
	}

	return claims, nil
}
