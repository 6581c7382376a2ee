package collaborator

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Departamentos reconhecidos; valores fora da lista caem em DepartmentDefault.
// O campo é informativo, nunca um gate de acesso, por isso não é rejeitado.
const DepartmentDefault = "Geral"

var knownDepartments = map[string]string{
	"ti":         "TI",
	"rh":         "RH",
	"financeiro": "Financeiro",
	"vendas":     "Vendas",
	"marketing":  "Marketing",
	"operações":  "Operações",
	"operacoes":  "Operações",
	"geral":      DepartmentDefault,
}

// NormalizeDepartment resolve o departamento informado para a forma canônica.
func NormalizeDepartment(department string) string {
	key := strings.ToLower(strings.TrimSpace(department))
	if key == "" {
		return DepartmentDefault
	}
	if canonical, ok := knownDepartments[key]; ok {
		return canonical
	}
	return DepartmentDefault
}

// Collaborator representa uma pessoa elegível a receber link de acesso.
// Registros nunca são removidos; a expiração é propriedade dos tokens.
type Collaborator struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

// Record é a visão de listagem: colaborador mais a última emissão conhecida.
type Record struct {
	Collaborator
	LastIssuedAt  *time.Time
	LastExpiresAt *time.Time
}

// IssuanceInput contém os campos registrados a cada emissão de token.
type IssuanceInput struct {
	Name       string
	Email      string
	Department string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Directory resolve/cadastra colaboradores e mantém metadados de emissão.
// A presença no diretório não concede acesso algum; só um token assinado
// e dentro da validade concede.
type Directory interface {
	// RegisterIssuance faz upsert idempotente por e-mail e anexa o
	// registro da emissão (append-only).
	RegisterIssuance(ctx context.Context, input IssuanceInput) (*Collaborator, error)
	// List devolve os colaboradores em ordem de cadastro com a última emissão.
	List(ctx context.Context) ([]Record, error)
}
