package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, CatalogQueriesTotal)
	assert.NotNil(t, CatalogQueryDuration)
	assert.NotNil(t, CatalogEmptyResultsTotal)
	assert.NotNil(t, MetaRefreshTotal)
	assert.NotNil(t, MetaRefreshErrorsTotal)
	assert.NotNil(t, MetaRefreshDuration)
	assert.NotNil(t, CatalogProducts)
	assert.NotNil(t, CartOperationsTotal)
	assert.NotNil(t, CartErrorsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
}
