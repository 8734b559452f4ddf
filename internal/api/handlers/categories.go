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

// CategoriesHandler handles category CRUD.
type CategoriesHandler struct {
	store store.Store
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(s store.Store) *CategoriesHandler {
	return &CategoriesHandler{store: s}
}

// --- Input/Output types ---

// CategoryBody is the writable portion of a category.
type CategoryBody struct {
	Name string `json:"name" minLength:"1" maxLength:"100"`
}

// CreateCategoryInput is the input for creating a category.
type CreateCategoryInput struct {
	Body CategoryBody
}

// CategoryOutput wraps a single category.
type CategoryOutput struct {
	Body domain.Category
}

// ListCategoriesOutput is the response for listing categories.
type ListCategoriesOutput struct {
	Body struct {
		Categories []domain.Category `json:"categories"`
	}
}

// GetCategoryInput is the input for fetching one category.
type GetCategoryInput struct {
	ID int64 `path:"id" doc:"Category ID"`
}

// UpdateCategoryInput is the input for renaming a category.
type UpdateCategoryInput struct {
	ID   int64 `path:"id" doc:"Category ID"`
	Body CategoryBody
}

// DeleteCategoryInput is the input for deleting a category.
type DeleteCategoryInput struct {
	ID int64 `path:"id" doc:"Category ID"`
}

// --- Handlers ---

// Create adds a category.
func (h *CategoriesHandler) Create(
	ctx context.Context,
	input *CreateCategoryInput,
) (*CategoryOutput, error) {
	c := &domain.Category{Name: input.Body.Name}
	if err := h.store.CreateCategory(ctx, c); err != nil {
		return nil, huma.Error500InternalServerError("creating category: " + err.Error())
	}
	return &CategoryOutput{Body: *c}, nil
}

// List returns all categories with their live product counts.
func (h *CategoriesHandler) List(
	ctx context.Context,
	_ *struct{},
) (*ListCategoriesOutput, error) {
	cats, err := h.store.ListCategories(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing categories: " + err.Error())
	}
	if cats == nil {
		cats = []domain.Category{}
	}

	resp := &ListCategoriesOutput{}
	resp.Body.Categories = cats
	return resp, nil
}

// Get returns one category by ID.
func (h *CategoriesHandler) Get(
	ctx context.Context,
	input *GetCategoryInput,
) (*CategoryOutput, error) {
	c, err := h.store.GetCategory(ctx, input.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, huma.Error404NotFound("category not found")
		}
		return nil, huma.Error500InternalServerError("fetching category: " + err.Error())
	}
	return &CategoryOutput{Body: *c}, nil
}

// Update renames a category.
func (h *CategoriesHandler) Update(
	ctx context.Context,
	input *UpdateCategoryInput,
) (*CategoryOutput, error) {
	c := &domain.Category{ID: input.ID, Name: input.Body.Name}
	if err := h.store.UpdateCategory(ctx, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, huma.Error404NotFound("category not found")
		}
		return nil, huma.Error500InternalServerError("updating category: " + err.Error())
	}
	return &CategoryOutput{Body: *c}, nil
}

// Delete removes an empty category. Categories that still have products
// are rejected with 409.
func (h *CategoriesHandler) Delete(
	ctx context.Context,
	input *DeleteCategoryInput,
) (*struct{}, error) {
	err := h.store.DeleteCategory(ctx, input.ID)
	switch {
	case err == nil:
		return &struct{}{}, nil
	case errors.Is(err, store.ErrCategoryNotEmpty):
		return nil, huma.Error409Conflict("category has products and cannot be deleted")
	case errors.Is(err, pgx.ErrNoRows):
		return nil, huma.Error404NotFound("category not found")
	default:
		return nil, huma.Error500InternalServerError("deleting category: " + err.Error())
	}
}

// RegisterCategoryRoutes registers category endpoints with the Huma API.
func RegisterCategoryRoutes(api huma.API, h *CategoriesHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/api/v1/categories",
		Summary:       "Create a category",
		Tags:          []string{"categories"},
		DefaultStatus: http.StatusCreated,
	}, h.Create)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns all categories with live product counts.",
		Tags:        []string{"categories"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Get a category by ID",
		Tags:        []string{"categories"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPut,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Rename a category",
		Tags:        []string{"categories"},
		Errors:      []int{http.StatusNotFound},
	}, h.Update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/api/v1/categories/{id}",
		Summary:       "Delete a category",
		Description:   "Deletes an empty category. Categories with products are rejected.",
		Tags:          []string{"categories"},
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
		DefaultStatus: http.StatusNoContent,
	}, h.Delete)
}
