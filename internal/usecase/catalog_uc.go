// File: internal/usecase/catalog_uc.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/domain/ports/repository"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

type CatalogUseCase interface {
	Create(ctx context.Context, item *model.CatalogItem) (*model.CatalogItem, error)
	Update(ctx context.Context, item *model.CatalogItem) (*model.CatalogItem, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.CatalogItem, error)
	List(ctx context.Context, kind model.CatalogKind, offset, limit int) ([]*model.CatalogItem, error)
}

type catalogUC struct {
	repo repository.CatalogRepository
	log  *zerolog.Logger
}

func NewCatalogUseCase(repo repository.CatalogRepository, log *zerolog.Logger) *catalogUC {
	return &catalogUC{repo: repo, log: log}
}

func (c *catalogUC) Create(ctx context.Context, item *model.CatalogItem) (*model.CatalogItem, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	if err := c.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	c.log.Info().Str("kind", string(item.Kind)).Str("item_id", item.ID).Msg("catalog item created")
	return item, nil
}

func (c *catalogUC) Update(ctx context.Context, item *model.CatalogItem) (*model.CatalogItem, error) {
	if item.ID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := c.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *catalogUC) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	return c.repo.Delete(ctx, id)
}

func (c *catalogUC) Get(ctx context.Context, id string) (*model.CatalogItem, error) {
	return c.repo.FindByID(ctx, id)
}

func (c *catalogUC) List(ctx context.Context, kind model.CatalogKind, offset, limit int) ([]*model.CatalogItem, error) {
	if !model.ValidCatalogKind(kind) {
		return nil, domain.ErrInvalidArgument
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return c.repo.ListByKind(ctx, kind, offset, limit)
}

func validateItem(item *model.CatalogItem) error {
	if item == nil || !model.ValidCatalogKind(item.Kind) {
		return domain.ErrInvalidArgument
	}
	if strings.TrimSpace(item.Name) == "" {
		return domain.ErrInvalidArgument
	}
	if item.PriceCents < 0 || item.Quantity < 0 {
		return domain.ErrInvalidArgument
	}
	return nil
}
