package collaborator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryDirectory é o diretório em memória para implantações de processo
// único sem Postgres. Não é durável: reiniciar o processo perde o cadastro
// (os tokens já emitidos continuam válidos, pois são autocontidos).
type MemoryDirectory struct {
	mu      sync.Mutex
	byEmail map[string]*Record
	order   []string
	now     func() time.Time
}

// NewMemoryDirectory cria o diretório vazio com relógio injetado.
func NewMemoryDirectory(now func() time.Time) *MemoryDirectory {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &MemoryDirectory{
		byEmail: make(map[string]*Record),
		now:     now,
	}
}

// RegisterIssuance faz upsert por e-mail; a última emissão vence
// (last-write-wins, o metadado é apenas informativo).
func (d *MemoryDirectory) RegisterIssuance(_ context.Context, input IssuanceInput) (*Collaborator, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	email := normalizeEmail(input.Email)
	rec, ok := d.byEmail[email]
	if !ok {
		rec = &Record{Collaborator: Collaborator{
			ID:        uuid.New(),
			Email:     email,
			CreatedAt: d.now(),
		}}
		d.byEmail[email] = rec
		d.order = append(d.order, email)
	}

	rec.Name = input.Name
	rec.Department = input.Department
	issuedAt, expiresAt := input.IssuedAt, input.ExpiresAt
	rec.LastIssuedAt = &issuedAt
	rec.LastExpiresAt = &expiresAt

	c := rec.Collaborator
	return &c, nil
}

// List devolve cópias em ordem de cadastro.
func (d *MemoryDirectory) List(_ context.Context) ([]Record, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	records := make([]Record, 0, len(d.order))
	for _, email := range d.order {
		rec := *d.byEmail[email]
		if rec.LastIssuedAt != nil {
			issuedAt := *rec.LastIssuedAt
			rec.LastIssuedAt = &issuedAt
		}
		if rec.LastExpiresAt != nil {
			expiresAt := *rec.LastExpiresAt
			rec.LastExpiresAt = &expiresAt
		}
		records = append(records, rec)
	}

	return records, nil
}
