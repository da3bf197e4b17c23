package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Factory is the database model for a supplier factory.
type Factory struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Localizacao string    `db:"localizacao"`
	Segmento    string    `db:"segmento"`
	Contato     string    `db:"contato"`
	Telefone    string    `db:"telefone"`
	Email       string    `db:"email"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// UpdateParams holds optional fields for a partial factory update.
type UpdateParams struct {
	Name        *string
	Localizacao *string
	Segmento    *string
	Contato     *string
	Telefone    *string
	Email       *string
}

const factoryNotFoundMsg = "factory not found"

const factoryColumns = `id, name, localizacao, segmento, contato, telefone, email, created_at, updated_at`

// Repository provides database operations for factories
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new factories repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanFactory(row pgx.Row) (*Factory, error) {
	var f Factory
	err := row.Scan(&f.ID, &f.Name, &f.Localizacao, &f.Segmento, &f.Contato, &f.Telefone, &f.Email, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all factories ordered by name.
func (r *Repository) List(ctx context.Context) ([]Factory, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+factoryColumns+` FROM factories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list factories: %w", err)
	}
	defer rows.Close()

	var factories []Factory
	for rows.Next() {
		f, err := scanFactory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan factory: %w", err)
		}
		factories = append(factories, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read factories: %w", err)
	}
	return factories, nil
}

// GetByID retrieves a factory by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Factory, error) {
	f, err := scanFactory(r.pool.QueryRow(ctx, `SELECT `+factoryColumns+` FROM factories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(factoryNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get factory: %w", err)
	}
	return f, nil
}

// Create inserts a new factory.
func (r *Repository) Create(ctx context.Context, f *Factory) error {
	query := `
		INSERT INTO factories (id, name, localizacao, segmento, contato, telefone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.pool.Exec(ctx, query,
		f.ID, f.Name, f.Localizacao, f.Segmento, f.Contato, f.Telefone, f.Email, f.CreatedAt, f.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert factory: %w", err)
	}
	return nil
}

// UpdatePartial applies a partial update; nil fields keep their stored value.
func (r *Repository) UpdatePartial(ctx context.Context, id uuid.UUID, params UpdateParams) error {
	query := `
		UPDATE factories SET
			name = COALESCE($2, name),
			localizacao = COALESCE($3, localizacao),
			segmento = COALESCE($4, segmento),
			contato = COALESCE($5, contato),
			telefone = COALESCE($6, telefone),
			email = COALESCE($7, email),
			updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id,
		params.Name, params.Localizacao, params.Segmento, params.Contato, params.Telefone, params.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to update factory: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(factoryNotFoundMsg)
	}
	return nil
}

// Delete removes a factory. Quotes and comments cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM factories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete factory: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(factoryNotFoundMsg)
	}
	return nil
}
