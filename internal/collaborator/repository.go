package collaborator

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapcrm/acesso/internal/db"
)

// Repository provê o diretório durável em Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria o diretório sobre o pool informado.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RegisterIssuance grava colaborador e emissão na mesma transação.
// O upsert é por e-mail normalizado; emissões são sempre novas linhas
// para preservar o histórico.
func (r *Repository) RegisterIssuance(ctx context.Context, input IssuanceInput) (*Collaborator, error) {
	const upsert = `
        INSERT INTO colaboradores (name, email, department)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO UPDATE
        SET name = EXCLUDED.name,
            department = EXCLUDED.department
        RETURNING id, name, email, department, created_at
    `
	const insertIssuance = `
        INSERT INTO emissoes (collaborator_id, issued_at, expires_at)
        VALUES ($1, $2, $3)
    `

	var c Collaborator
	err := db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(ctx, upsert,
			strings.TrimSpace(input.Name),
			normalizeEmail(input.Email),
			input.Department,
		)
		if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Department, &c.CreatedAt); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, insertIssuance, c.ID, input.IssuedAt, input.ExpiresAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// List devolve colaboradores em ordem de cadastro com a emissão mais recente.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	const query = `
        SELECT c.id, c.name, c.email, c.department, c.created_at,
               e.issued_at, e.expires_at
        FROM colaboradores c
        LEFT JOIN LATERAL (
            SELECT issued_at, expires_at
            FROM emissoes
            WHERE collaborator_id = c.id
            ORDER BY issued_at DESC
            LIMIT 1
        ) e ON true
        ORDER BY c.created_at ASC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Department, &rec.CreatedAt,
			&rec.LastIssuedAt, &rec.LastExpiresAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return records, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
