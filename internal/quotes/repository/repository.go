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

// ── Domain Models ─────────────────────────────────────────────────────────────

// Quote is the database model for one quoted product line.
type Quote struct {
	ID          uuid.UUID  `db:"id"`
	FactoryID   uuid.UUID  `db:"factory_id"`
	Ref         string     `db:"ref"`
	Description string     `db:"description"`
	Name        string     `db:"name"`
	QuoteName   string     `db:"quote_name"`
	NCM         string     `db:"ncm"`
	Unit        string     `db:"unit"`
	Obs         string     `db:"obs"`
	Ctns        float64    `db:"ctns"`
	UnitCtn     float64    `db:"unit_ctn"`
	UnitPrice   float64    `db:"unit_price"`
	Amount      float64    `db:"amount"`
	CBM         float64    `db:"cbm"`
	CBMTotal    float64    `db:"cbm_total"`
	GrossWeight float64    `db:"gross_weight"`
	NetWeight   float64    `db:"net_weight"`
	Length      float64    `db:"length"`
	Width       float64    `db:"width"`
	Height      float64    `db:"height"`
	OrderStatus string     `db:"order_status"`
	ExportedAt  *time.Time `db:"exported_at"`
	DataPedido  string     `db:"data_pedido"`
	LotePedido  string     `db:"lote_pedido"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// OrderFields are the two user-editable order fields re-read immediately
// before an export toggle write so concurrent edits are not clobbered.
type OrderFields struct {
	DataPedido string
	LotePedido string
}

// UpdateParams holds optional fields for a partial quote update.
// Nil pointers leave the stored value untouched.
type UpdateParams struct {
	Ref         *string
	Description *string
	Name        *string
	QuoteName   *string
	NCM         *string
	Unit        *string
	Obs         *string
	Ctns        *float64
	UnitCtn     *float64
	UnitPrice   *float64
	Amount      *float64
	CBM         *float64
	CBMTotal    *float64
	GrossWeight *float64
	NetWeight   *float64
	Length      *float64
	Width       *float64
	Height      *float64
	DataPedido  *string
	LotePedido  *string
}

const quoteNotFoundMsg = "quote not found"

const quoteColumns = `id, factory_id, ref, description, name, quote_name, ncm, unit, obs,
		ctns, unit_ctn, unit_price, amount, cbm, cbm_total,
		gross_weight, net_weight, length, width, height,
		order_status, exported_at, data_pedido, lote_pedido, created_at, updated_at`

// ── Repository ────────────────────────────────────────────────────────────────

// Repository provides database operations for quotes
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	err := row.Scan(
		&q.ID, &q.FactoryID, &q.Ref, &q.Description, &q.Name, &q.QuoteName, &q.NCM, &q.Unit, &q.Obs,
		&q.Ctns, &q.UnitCtn, &q.UnitPrice, &q.Amount, &q.CBM, &q.CBMTotal,
		&q.GrossWeight, &q.NetWeight, &q.Length, &q.Width, &q.Height,
		&q.OrderStatus, &q.ExportedAt, &q.DataPedido, &q.LotePedido, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByFactory returns all quotes of one factory ordered by creation time,
// which is the order the import grouper expects.
func (r *Repository) ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE factory_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	return collectQuotes(rows)
}

// ListAll returns every quote in the system ordered by factory and creation
// time. Used by the global duplicate scan and the spreadsheet export worker.
func (r *Repository) ListAll(ctx context.Context) ([]Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY factory_id, created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	return collectQuotes(rows)
}

func collectQuotes(rows pgx.Rows) ([]Quote, error) {
	var quotes []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quotes: %w", err)
	}
	return quotes, nil
}

// GetByID retrieves a quote by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	q, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}

// Create inserts a new quote.
func (r *Repository) Create(ctx context.Context, q *Quote) error {
	query := `
		INSERT INTO quotes (
			id, factory_id, ref, description, name, quote_name, ncm, unit, obs,
			ctns, unit_ctn, unit_price, amount, cbm, cbm_total,
			gross_weight, net_weight, length, width, height,
			order_status, exported_at, data_pedido, lote_pedido, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`

	if _, err := r.pool.Exec(ctx, query,
		q.ID, q.FactoryID, q.Ref, q.Description, q.Name, q.QuoteName, q.NCM, q.Unit, q.Obs,
		q.Ctns, q.UnitCtn, q.UnitPrice, q.Amount, q.CBM, q.CBMTotal,
		q.GrossWeight, q.NetWeight, q.Length, q.Width, q.Height,
		q.OrderStatus, q.ExportedAt, q.DataPedido, q.LotePedido, q.CreatedAt, q.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

// UpdatePartial applies a partial update. Only the fields set in params are
// written; everything else keeps its stored value (merge semantics).
func (r *Repository) UpdatePartial(ctx context.Context, id uuid.UUID, params UpdateParams) error {
	query := `
		UPDATE quotes SET
			ref = COALESCE($2, ref),
			description = COALESCE($3, description),
			name = COALESCE($4, name),
			quote_name = COALESCE($5, quote_name),
			ncm = COALESCE($6, ncm),
			unit = COALESCE($7, unit),
			obs = COALESCE($8, obs),
			ctns = COALESCE($9, ctns),
			unit_ctn = COALESCE($10, unit_ctn),
			unit_price = COALESCE($11, unit_price),
			amount = COALESCE($12, amount),
			cbm = COALESCE($13, cbm),
			cbm_total = COALESCE($14, cbm_total),
			gross_weight = COALESCE($15, gross_weight),
			net_weight = COALESCE($16, net_weight),
			length = COALESCE($17, length),
			width = COALESCE($18, width),
			height = COALESCE($19, height),
			data_pedido = COALESCE($20, data_pedido),
			lote_pedido = COALESCE($21, lote_pedido),
			updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id,
		params.Ref, params.Description, params.Name, params.QuoteName, params.NCM, params.Unit, params.Obs,
		params.Ctns, params.UnitCtn, params.UnitPrice, params.Amount, params.CBM, params.CBMTotal,
		params.GrossWeight, params.NetWeight, params.Length, params.Width, params.Height,
		params.DataPedido, params.LotePedido,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// Delete removes a quote.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// GetOrderFields re-reads the current dataPedido/lotePedido of a quote.
// The export toggler calls this immediately before each status write so a
// concurrent edit to those two fields is preserved rather than clobbered.
func (r *Repository) GetOrderFields(ctx context.Context, id uuid.UUID) (OrderFields, error) {
	var fields OrderFields
	err := r.pool.QueryRow(ctx,
		`SELECT data_pedido, lote_pedido FROM quotes WHERE id = $1`, id,
	).Scan(&fields.DataPedido, &fields.LotePedido)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fields, apperr.NotFound(quoteNotFoundMsg)
		}
		return fields, fmt.Errorf("failed to read order fields: %w", err)
	}
	return fields, nil
}

// SetOrderStatus writes a quote's workflow status together with the re-read
// order fields. exportedAt is nil when transitioning back to pending.
func (r *Repository) SetOrderStatus(ctx context.Context, id uuid.UUID, status string, exportedAt *time.Time, fields OrderFields) error {
	query := `
		UPDATE quotes SET
			order_status = $2,
			exported_at = $3,
			data_pedido = $4,
			lote_pedido = $5,
			updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status, exportedAt, fields.DataPedido, fields.LotePedido)
	if err != nil {
		return fmt.Errorf("failed to set order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}
