package catalog

import (
	"strings"

	"studentbuy/internal/models"
)

// ShowcaseTab pestañas de productos destacados de la portada
type ShowcaseTab string

const (
	TabTrending ShowcaseTab = "trending"
	TabOffers   ShowcaseTab = "offers"
	TabLatest   ShowcaseTab = "latest"

	DefaultShowcaseLimit = 8
)

func ParseShowcaseTab(s string) (ShowcaseTab, bool) {
	switch tab := ShowcaseTab(strings.ToLower(strings.TrimSpace(s))); tab {
	case TabTrending, TabOffers, TabLatest:
		return tab, true
	case "":
		return TabTrending, true
	}
	return "", false
}

// Showcase devuelve como máximo limit productos de la pestaña indicada
func Showcase(products []models.Product, tab ShowcaseTab, limit int) []models.Product {
	if limit <= 0 {
		limit = DefaultShowcaseLimit
	}

	var out []models.Product
	switch tab {
	case TabTrending:
		out = keep(products, func(p models.Product) bool { return p.Trending })
	case TabOffers:
		out = keep(products, func(p models.Product) bool { return p.DiscountPrice > 0 })
	case TabLatest:
		out = keep(products, func(models.Product) bool { return true })
		SortProducts(out, SortNewest)
	default:
		out = keep(products, func(models.Product) bool { return true })
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func keep(products []models.Product, fn func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if fn(p) {
			out = append(out, p)
		}
	}
	return out
}
