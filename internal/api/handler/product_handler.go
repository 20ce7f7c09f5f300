package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storely/catalog-api/internal/api/metrics"
	"github.com/storely/catalog-api/internal/core/domain"
	"github.com/storely/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns the full catalog. Public, no auth.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  listProductsResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(http.StatusOK, listProductsResponse{
		Message:  "products retrieved",
		Products: products,
	})
}

// Create adds a product to the catalog. Requires admin or manager role.
// Provenance is taken from the authenticated identity, never from the body.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := currentUser(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), ports.CreateProductInput{
		Name:      req.Name,
		Price:     req.Price,
		CreatedBy: user.ID,
	})
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, productResponse{
		Message: "product created",
		Product: product,
	})
}

// Delete removes a product and returns the deleted record's snapshot.
// Admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	product, err := h.productService.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ProductsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, productResponse{
		Message: "product deleted",
		Product: product,
	})
}
