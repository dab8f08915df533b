package services

import (
	"context"

	"vitalimes-backend/models"
	"vitalimes-backend/repositories"
)

// CatalogStore is the persistence boundary for product headers and variants.
// GetByID returns models.ErrProductNotFound for an unknown id.
type CatalogStore interface {
	ListByStatus(ctx context.Context, status models.ProductStatus) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	InsertHeader(ctx context.Context, h models.ProductHeader, slots models.SlotState) (int, error)
	UpdateHeader(ctx context.Context, id int, h models.ProductHeader, slots models.SlotState) error
	DeleteHeader(ctx context.Context, id int) error
	ReplaceVariants(ctx context.Context, productID int, rows []models.Variant) error
	ListVariants(ctx context.Context, productID int) ([]models.Variant, error)
	DeleteVariants(ctx context.Context, productID int) error
	// Atomically runs fn against a store bound to one transaction.
	Atomically(ctx context.Context, fn func(CatalogStore) error) error
}

// ListCache holds list-by-status results between writes. GetList reports the
// cache generation it read under; SetList stores under that generation so a
// fill that overlaps an Invalidate is never served.
type ListCache interface {
	GetList(ctx context.Context, status models.ProductStatus) (products []models.Product, gen int64, ok bool)
	SetList(ctx context.Context, status models.ProductStatus, gen int64, products []models.Product)
	Invalidate(ctx context.Context)
}

type pgCatalog struct {
	*repositories.ProductRepository
}

// NewPGCatalog adapts the pgx repository to CatalogStore.
func NewPGCatalog(repo *repositories.ProductRepository) CatalogStore {
	return pgCatalog{repo}
}

func (c pgCatalog) Atomically(ctx context.Context, fn func(CatalogStore) error) error {
	return c.RunInTx(ctx, func(tx *repositories.ProductRepository) error {
		return fn(pgCatalog{tx})
	})
}

type noCache struct{}

func (noCache) GetList(context.Context, models.ProductStatus) ([]models.Product, int64, bool) {
	return nil, 0, false
}

func (noCache) SetList(context.Context, models.ProductStatus, int64, []models.Product) {}

func (noCache) Invalidate(context.Context) {}
