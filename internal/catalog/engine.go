// Package catalog contiene el motor de consultas del catálogo: filtro por
// categoría, facetas, ordenamiento y metadatos de facetas para la interfaz.
// Todas las funciones son puras y no modifican los productos recibidos.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"studentbuy/internal/models"
)

// Facets metadatos para dibujar el panel de filtros
type Facets struct {
	// marcas del conjunto filtrado por categoría, antes de aplicar facetas
	AvailableBrands   []string   `json:"available_brands"`
	ActiveFilterCount int        `json:"active_filter_count"`
	PriceBounds       PriceRange `json:"price_bounds"`
}

// Result resultado ordenado de una consulta
type Result struct {
	Products []models.Product `json:"products"`
	Facets   Facets           `json:"facets"`
}

// Query filtra y ordena products. category vacío no restringe; la comparación
// de categoría no distingue mayúsculas. Un rango con min > max devuelve un
// resultado vacío: validar el rango es responsabilidad del llamador.
func Query(products []models.Product, category string, filters FilterState) Result {
	inCategory := FilterCategory(products, category)

	result := make([]models.Product, 0, len(inCategory))
	for _, p := range inCategory {
		if matchesFacets(p, filters) {
			result = append(result, p)
		}
	}
	SortProducts(result, filters.SortKey)

	return Result{
		Products: result,
		Facets: Facets{
			AvailableBrands:   distinctBrands(inCategory),
			ActiveFilterCount: filters.ActiveCount(),
			PriceBounds:       priceBounds(inCategory),
		},
	}
}

// FilterCategory devuelve una copia con los productos de la categoría
func FilterCategory(products []models.Product, category string) []models.Product {
	if category == "" {
		return slices.Clone(products)
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFacets(p models.Product, f FilterState) bool {
	price := p.EffectivePrice()
	if price < f.PriceRange.Min || price > f.PriceRange.Max {
		return false
	}
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, p.Brand) {
		return false
	}
	if f.MinRating > 0 && p.Ratings.Average < f.MinRating {
		return false
	}
	if f.DiscountOnly && !p.HasDiscount() {
		return false
	}
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	return true
}

// búsqueda simple sobre los mismos campos del índice de texto
func matchesSearch(p models.Product, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// SortProducts ordena en el lugar de forma estable
func SortProducts(products []models.Product, key SortKey) {
	var compare func(a, b models.Product) int

	switch key {
	case SortPriceAsc:
		compare = func(a, b models.Product) int {
			return cmp.Compare(a.EffectivePrice(), b.EffectivePrice())
		}
	case SortPriceDesc:
		compare = func(a, b models.Product) int {
			return cmp.Compare(b.EffectivePrice(), a.EffectivePrice())
		}
	case SortRatingDesc:
		compare = func(a, b models.Product) int {
			return cmp.Compare(b.Ratings.Average, a.Ratings.Average)
		}
	case SortNewest:
		compare = func(a, b models.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	case SortFeatured:
		// trending primero, sin otro criterio
		compare = func(a, b models.Product) int {
			return cmp.Compare(trendingRank(a), trendingRank(b))
		}
	default:
		return
	}

	slices.SortStableFunc(products, compare)
}

func trendingRank(p models.Product) int {
	if p.Trending {
		return 0
	}
	return 1
}

func distinctBrands(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	brands := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}

func priceBounds(products []models.Product) PriceRange {
	if len(products) == 0 {
		return PriceRange{}
	}
	bounds := PriceRange{Min: products[0].EffectivePrice(), Max: products[0].EffectivePrice()}
	for _, p := range products[1:] {
		bounds.Min = min(bounds.Min, p.EffectivePrice())
		bounds.Max = max(bounds.Max, p.EffectivePrice())
	}
	return bounds
}

// FindByID busca un producto por ID. La ausencia no es un error.
func FindByID(products []models.Product, id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
