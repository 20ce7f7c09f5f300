package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storely/catalog-api/internal/core/domain"
	"github.com/storely/catalog-api/internal/core/ports"
)

// ProductService implements catalog use cases.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

// Create persists a new product. Name is trimmed and must be non-empty;
// price must be positive. CreatedBy records provenance and is immutable.
func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price <= 0 || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:      name,
		Price:     in.Price,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.log.Info().Str("product_id", created.ID).Str("created_by", created.CreatedBy).Msg("product created")
	return created, nil
}

// Delete removes a product and returns a snapshot of the deleted record.
func (s *ProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", id).Msg("product deleted")
	return product, nil
}

// List returns every product. Public, no auth involved.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}
