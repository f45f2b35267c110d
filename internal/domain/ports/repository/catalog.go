package repository

import (
	"context"

	"gamestore-backoffice/internal/domain/model"
)

// -----------------------------
// Catalog
// -----------------------------

type CatalogRepository interface {
	Save(ctx context.Context, item *model.CatalogItem) error
	Update(ctx context.Context, item *model.CatalogItem) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.CatalogItem, error)
	ListByKind(ctx context.Context, kind model.CatalogKind, offset, limit int) ([]*model.CatalogItem, error)
	CountByKind(ctx context.Context) (map[model.CatalogKind]int, error)
}
