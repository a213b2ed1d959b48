package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 1499.0, Product{Price: 1999, DiscountPrice: 1499}.EffectivePrice())
	assert.Equal(t, 1795.0, Product{Price: 1795}.EffectivePrice())
}

func TestDiscountPercentage(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected int
	}{
		{"campus shoes", Product{Price: 1999, DiscountPrice: 1499}, 25},
		{"no discount", Product{Price: 1795}, 0},
		{"laptop", Product{Price: 52999, DiscountPrice: 49999}, 6},
		{"earbuds", Product{Price: 1999, DiscountPrice: 1299}, 35},
		{"half rounds up", Product{Price: 200, DiscountPrice: 199}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.DiscountPercentage())
		})
	}
}

func TestHasDiscount(t *testing.T) {
	assert.True(t, Product{Price: 1000, DiscountPrice: 800}.HasDiscount())
	assert.False(t, Product{Price: 1000}.HasDiscount())
	assert.False(t, Product{Price: 1000, DiscountPrice: 1000}.HasDiscount())
}

func TestScalePrice(t *testing.T) {
	assert.Equal(t, 979.0, ScalePrice(999, 0.98))
	assert.Equal(t, 1019.0, ScalePrice(999, 1.02))
	assert.Equal(t, 49999.0, ScalePrice(49999, 1))
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("Books"))
	assert.False(t, IsValidCategory("books"))
	assert.False(t, IsValidCategory("Toys"))
}
