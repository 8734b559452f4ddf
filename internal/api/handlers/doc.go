// Package handlers implements HTTP handlers for the storefront API.
// Catalog, product, category, favorite, and cart endpoints are typed
// Huma operations; the health probes are plain Echo handlers mounted
// outside the versioned API.
package handlers

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
