// File: internal/infra/db/postgres/catalog_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

type CatalogRepo struct {
	pool *pgxpool.Pool
}

func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

func (r *CatalogRepo) Save(ctx context.Context, item *model.CatalogItem) error {
	attrs, err := encodeAttrs(item.Attrs)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO catalog_items (id, kind, name, description, price_cents, quantity, image_url, attrs, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()), COALESCE($10, NOW()));`
	if _, err := r.pool.Exec(ctx, q,
		item.ID, string(item.Kind), item.Name, item.Description, item.PriceCents,
		item.Quantity, item.ImageURL, attrs, item.CreatedAt, item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("save catalog item: %w", err)
	}
	return nil
}

func (r *CatalogRepo) Update(ctx context.Context, item *model.CatalogItem) error {
	attrs, err := encodeAttrs(item.Attrs)
	if err != nil {
		return err
	}
	const q = `
UPDATE catalog_items SET
  name = $2, description = $3, price_cents = $4, quantity = $5,
  image_url = $6, attrs = $7, updated_at = NOW()
WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, q,
		item.ID, item.Name, item.Description, item.PriceCents, item.Quantity, item.ImageURL, attrs,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM catalog_items WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) FindByID(ctx context.Context, id string) (*model.CatalogItem, error) {
	const q = `
SELECT id, kind, name, description, price_cents, quantity, image_url, attrs, created_at, updated_at
  FROM catalog_items WHERE id = $1;`
	item, err := scanItem(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find catalog item: %w", err)
	}
	return item, nil
}

func (r *CatalogRepo) ListByKind(ctx context.Context, kind model.CatalogKind, offset, limit int) ([]*model.CatalogItem, error) {
	const q = `
SELECT id, kind, name, description, price_cents, quantity, image_url, attrs, created_at, updated_at
  FROM catalog_items WHERE kind = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3;`
	rows, err := r.pool.Query(ctx, q, string(kind), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query catalog items: %w", err)
	}
	defer rows.Close()

	var out []*model.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) CountByKind(ctx context.Context) (map[model.CatalogKind]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT kind, COUNT(*) FROM catalog_items GROUP BY kind;`)
	if err != nil {
		return nil, fmt.Errorf("count catalog items: %w", err)
	}
	defer rows.Close()

	out := map[model.CatalogKind]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan catalog count: %w", err)
		}
		out[model.CatalogKind(kind)] = n
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*model.CatalogItem, error) {
	var item model.CatalogItem
	var kind string
	var attrs []byte
	if err := row.Scan(
		&item.ID, &kind, &item.Name, &item.Description, &item.PriceCents,
		&item.Quantity, &item.ImageURL, &attrs, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.Kind = model.CatalogKind(kind)
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &item.Attrs); err != nil {
			return nil, fmt.Errorf("decode attrs: %w", err)
		}
	}
	return &item, nil
}

func encodeAttrs(attrs map[string]any) ([]byte, error) {
	if attrs == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("encode attrs: %w", err)
	}
	return b, nil
}
