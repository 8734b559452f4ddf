package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mstepanov/storefront/internal/store"
	domain "github.com/mstepanov/storefront/pkg/types"
)

// FavoritesHandler handles per-user favorites. The user is identified
// by the X-User-ID header; there is no account system behind it.
type FavoritesHandler struct {
	store store.Store
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(s store.Store) *FavoritesHandler {
	return &FavoritesHandler{store: s}
}

// --- Input/Output types ---

// ListFavoritesInput identifies the requesting user.
type ListFavoritesInput struct {
	UserID string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
}

// ListFavoritesOutput is the response for listing favorites.
type ListFavoritesOutput struct {
	Body struct {
		Items []domain.ProductSummary `json:"items"`
	}
}

// FavoriteInput identifies a user and a product.
type FavoriteInput struct {
	UserID    string `header:"X-User-ID" doc:"Requesting user" required:"true" minLength:"1"`
	ProductID int64  `path:"productID"  doc:"Product ID"`
}

// FavoriteOutput wraps the stored favorite record.
type FavoriteOutput struct {
	Body domain.Favorite
}

// --- Handlers ---

// List returns the user's favorited products, most recent first.
func (h *FavoritesHandler) List(
	ctx context.Context,
	input *ListFavoritesInput,
) (*ListFavoritesOutput, error) {
	items, err := h.store.ListFavoriteProducts(ctx, input.UserID)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing favorites: " + err.Error())
	}
	if items == nil {
		items = []domain.ProductSummary{}
	}

	resp := &ListFavoritesOutput{}
	resp.Body.Items = items
	return resp, nil
}

// Add favorites a product for the user. Re-adding an existing favorite
// returns the original record rather than an error.
func (h *FavoritesHandler) Add(
	ctx context.Context,
	input *FavoriteInput,
) (*FavoriteOutput, error) {
	if _, err := h.store.GetProduct(ctx, input.ProductID); err != nil {
		return nil, huma.Error404NotFound("product not found")
	}

	f, err := h.store.AddFavorite(ctx, input.UserID, input.ProductID)
	if err != nil {
		return nil, huma.Error500InternalServerError("adding favorite: " + err.Error())
	}
	return &FavoriteOutput{Body: *f}, nil
}

// Remove unfavorites a product. Removing a product that was never
// favorited is a no-op.
func (h *FavoritesHandler) Remove(
	ctx context.Context,
	input *FavoriteInput,
) (*struct{}, error) {
	if err := h.store.RemoveFavorite(ctx, input.UserID, input.ProductID); err != nil {
		return nil, huma.Error500InternalServerError("removing favorite: " + err.Error())
	}
	return &struct{}{}, nil
}

// RegisterFavoriteRoutes registers favorites endpoints with the Huma API.
func RegisterFavoriteRoutes(api huma.API, h *FavoritesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-favorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Tags:        []string{"favorites"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID:   "add-favorite",
		Method:        http.MethodPut,
		Path:          "/api/v1/favorites/{productID}",
		Summary:       "Favorite a product",
		Description:   "Idempotent: favoriting twice returns the original record.",
		Tags:          []string{"favorites"},
		Errors:        []int{http.StatusNotFound},
		DefaultStatus: http.StatusCreated,
	}, h.Add)

	huma.Register(api, huma.Operation{
		OperationID:   "remove-favorite",
		Method:        http.MethodDelete,
		Path:          "/api/v1/favorites/{productID}",
		Summary:       "Unfavorite a product",
		Tags:          []string{"favorites"},
		DefaultStatus: http.StatusNoContent,
	}, h.Remove)
}
