package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentbuy/internal/catalog"
	"studentbuy/internal/models"
)

func TestProductsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Products() {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.True(t, models.IsValidCategory(p.Category), p.ID)
		assert.Greater(t, p.Price, 0.0)
		if p.DiscountPrice > 0 {
			assert.Less(t, p.DiscountPrice, p.Price, p.ID)
		}
		assert.NotEmpty(t, p.Images)
		assert.NotEmpty(t, p.AffiliateLinks)
	}
}

func TestStaticSource(t *testing.T) {
	src := NewStatic()

	products, err := src.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 8)

	products[0].Title = "changed"
	again, _ := src.FetchProducts(context.Background())
	assert.Equal(t, "HP Pavilion 15 Laptop", again[0].Title)
}

func TestStaticSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStatic().FetchProducts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedCatalogElectronicsPage(t *testing.T) {
	products, _ := NewStatic().FetchProducts(context.Background())

	f := catalog.DefaultFilters()
	f.SortKey = catalog.SortPriceAsc
	res := catalog.Query(products, "electronics", f)

	require.Len(t, res.Products, 3)
	assert.Equal(t, "4", res.Products[0].ID)
	assert.Equal(t, []string{"HP", "boAt", "OnePlus"}, res.Facets.AvailableBrands)

	opts := catalog.ComputeAffiliateOptions(res.Products[0])
	require.Len(t, opts, 2)
	assert.Equal(t, "flipkart", opts[0].Retailer)
	assert.Equal(t, 1273.0, opts[0].Price)
}
