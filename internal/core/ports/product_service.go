package ports

import (
	"context"

	"github.com/storely/catalog-api/internal/core/domain"
)

// CreateProductInput carries the data needed to create a product.
// CreatedBy is the id of the authenticated user, resolved by the handler.
type CreateProductInput struct {
	Name      string
	Price     float64
	CreatedBy string
}

// ProductService defines use-case operations for products.
type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	// Delete removes the product and returns a snapshot of the deleted record.
	Delete(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
