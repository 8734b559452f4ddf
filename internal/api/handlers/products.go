package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5"

	"github.com/mstepanov/storefront/internal/store"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// ProductsHandler handles admin product CRUD.
type ProductsHandler struct {
	store store.Store
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s store.Store) *ProductsHandler {
	return &ProductsHandler{store: s}
}

// --- Input/Output types ---

// ProductBody is the writable portion of a product.
type ProductBody struct {
	Name          string   `json:"name"                              minLength:"1" maxLength:"255"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"                             exclusiveMinimum:"0"`
	StockQuantity int      `json:"stock_quantity"                    minimum:"0"`
	Availability  string   `json:"availability_type"                 enum:"in_stock,pre_order,discontinued"`
	IsActive      bool     `json:"is_active"`
	CategoryID    int64    `json:"category_id"                       minimum:"1"`
	ImageURLs     []string `json:"image_urls,omitempty"`
}

// CreateProductInput is the input for creating a product.
type CreateProductInput struct {
	Body ProductBody
}

// ProductOutput wraps a single full product record.
type ProductOutput struct {
	Body domain.Product
}

// GetProductInput is the input for fetching one product.
type GetProductInput struct {
	ID int64 `path:"id" doc:"Product ID"`
}

// UpdateProductInput is the input for replacing a product.
type UpdateProductInput struct {
	ID   int64 `path:"id" doc:"Product ID"`
	Body ProductBody
}

// DeleteProductInput is the input for deleting a product.
type DeleteProductInput struct {
	ID int64 `path:"id" doc:"Product ID"`
}

func (b *ProductBody) toDomain() *domain.Product {
	return &domain.Product{
		Name:          b.Name,
		Description:   b.Description,
		Price:         b.Price,
		StockQuantity: b.StockQuantity,
		Availability:  domain.AvailabilityType(b.Availability),
		IsActive:      b.IsActive,
		CategoryID:    b.CategoryID,
		ImageURLs:     b.ImageURLs,
	}
}

// --- Handlers ---

// Create adds a product to the catalog.
func (h *ProductsHandler) Create(
	ctx context.Context,
	input *CreateProductInput,
) (*ProductOutput, error) {
	p := input.Body.toDomain()
	if err := h.store.CreateProduct(ctx, p); err != nil {
		return nil, huma.Error500InternalServerError("creating product: " + err.Error())
	}
	return &ProductOutput{Body: *p}, nil
}

// Get returns one product by ID, including inactive ones.
func (h *ProductsHandler) Get(
	ctx context.Context,
	input *GetProductInput,
) (*ProductOutput, error) {
	p, err := h.store.GetProduct(ctx, input.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, huma.Error404NotFound("product not found")
		}
		return nil, huma.Error500InternalServerError("fetching product: " + err.Error())
	}
	return &ProductOutput{Body: *p}, nil
}

// Update replaces a product's writable fields.
func (h *ProductsHandler) Update(
	ctx context.Context,
	input *UpdateProductInput,
) (*ProductOutput, error) {
	p := input.Body.toDomain()
	p.ID = input.ID

	if err := h.store.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, huma.Error404NotFound("product not found")
		}
		return nil, huma.Error500InternalServerError("updating product: " + err.Error())
	}
	return &ProductOutput{Body: *p}, nil
}

// Delete removes a product from the catalog.
func (h *ProductsHandler) Delete(
	ctx context.Context,
	input *DeleteProductInput,
) (*struct{}, error) {
	if err := h.store.DeleteProduct(ctx, input.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, huma.Error404NotFound("product not found")
		}
		return nil, huma.Error500InternalServerError("deleting product: " + err.Error())
	}
	return &struct{}{}, nil
}

// RegisterProductRoutes registers product CRUD endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Method:        http.MethodPost,
		Path:          "/api/v1/products",
		Summary:       "Create a product",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusCreated,
	}, h.Create)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get a product by ID",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Method:      http.MethodPut,
		Path:        "/api/v1/products/{id}",
		Summary:     "Update a product",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound},
	}, h.Update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-product",
		Method:        http.MethodDelete,
		Path:          "/api/v1/products/{id}",
		Summary:       "Delete a product",
		Tags:          []string{"products"},
		Errors:        []int{http.StatusNotFound},
		DefaultStatus: http.StatusNoContent,
	}, h.Delete)
}
