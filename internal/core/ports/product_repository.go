package ports

import (
	"context"

	"github.com/storely/catalog-api/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// Delete removes the product. Returns domain.ErrProductNotFound when
	// no document matches id.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Product, error)
}
