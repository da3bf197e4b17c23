package repository

import (
	"context"
	"fmt"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Imports are derived from quote timestamps, so only the user-editable
// overlay is persisted, keyed by (factory_id, bucket_id).

// UpsertParams holds optional overlay fields. Nil pointers leave the stored
// value untouched (merge semantics, never clobbering unspecified fields).
type UpsertParams struct {
	ImportName    *string
	QuoteName     *string
	DataPedido    *string
	LotePedido    *string
	IsReplacement *bool
}

// Repository provides database operations for import metadata overlays.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new imports repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByFactory returns the overlay map for one factory, keyed by bucket id.
func (r *Repository) ListByFactory(ctx context.Context, factoryID uuid.UUID) (map[string]aggregation.ImportMetadata, error) {
	query := `
		SELECT bucket_id, import_name, quote_name, data_pedido, lote_pedido, is_replacement
		FROM import_metadata WHERE factory_id = $1`

	rows, err := r.pool.Query(ctx, query, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list import metadata: %w", err)
	}
	defer rows.Close()

	metadata := make(map[string]aggregation.ImportMetadata)
	for rows.Next() {
		var bucketID string
		var meta aggregation.ImportMetadata
		if err := rows.Scan(&bucketID, &meta.ImportName, &meta.QuoteName, &meta.DataPedido, &meta.LotePedido, &meta.IsReplacement); err != nil {
			return nil, fmt.Errorf("failed to scan import metadata: %w", err)
		}
		metadata[bucketID] = meta
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read import metadata: %w", err)
	}
	return metadata, nil
}

// Upsert merges overlay fields for a bucket. On conflict, only the fields
// present in params overwrite; absent fields keep their stored values.
func (r *Repository) Upsert(ctx context.Context, factoryID uuid.UUID, bucketID string, params UpsertParams) error {
	query := `
		INSERT INTO import_metadata (factory_id, bucket_id, import_name, quote_name, data_pedido, lote_pedido, is_replacement, updated_at)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), COALESCE($6, ''), COALESCE($7, false), now())
		ON CONFLICT (factory_id, bucket_id) DO UPDATE SET
			import_name = COALESCE($3, import_metadata.import_name),
			quote_name = COALESCE($4, import_metadata.quote_name),
			data_pedido = COALESCE($5, import_metadata.data_pedido),
			lote_pedido = COALESCE($6, import_metadata.lote_pedido),
			is_replacement = COALESCE($7, import_metadata.is_replacement),
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query, factoryID, bucketID,
		params.ImportName, params.QuoteName, params.DataPedido, params.LotePedido, params.IsReplacement,
	); err != nil {
		return fmt.Errorf("failed to upsert import metadata: %w", err)
	}
	return nil
}
