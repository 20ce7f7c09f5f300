package handler

import "github.com/storely/catalog-api/internal/core/domain"

type createProductRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type productResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type listProductsResponse struct {
	Message  string           `json:"message"`
	Products []domain.Product `json:"products"`
}
