package catalog

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// SortKey criterio de ordenamiento del listado
type SortKey string

const (
	// SortNone conserva el orden de la fuente
	SortNone       SortKey = ""
	SortFeatured   SortKey = "featured"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortNewest     SortKey = "newest"
)

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 100000
)

// nombres usados por la interfaz original
var sortAliases = map[string]SortKey{
	"price-low":  SortPriceAsc,
	"price-high": SortPriceDesc,
	"rating":     SortRatingDesc,
}

// ParseSortKey normaliza un criterio recibido por query string.
// Un valor desconocido equivale a SortNone.
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	switch k := SortKey(s); k {
	case SortFeatured, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNewest:
		return k
	}
	if k, ok := sortAliases[s]; ok {
		return k
	}
	return SortNone
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterState especificación de filtros de una vista del catálogo.
// Es un valor: no guarda referencias a productos y se puede serializar en la URL.
// Brands tiene semántica de conjunto; el orden no afecta al resultado.
type FilterState struct {
	PriceRange   PriceRange `json:"price_range"`
	Brands       []string   `json:"brands"`
	MinRating    float64    `json:"min_rating"`
	DiscountOnly bool       `json:"discount_only"`
	SortKey      SortKey    `json:"sort"`
	Search       string     `json:"q,omitempty"`
}

// DefaultFilters devuelve los filtros iniciales de una vista
func DefaultFilters() FilterState {
	return FilterState{
		PriceRange: PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
	}
}

// ClearFilters restablece los filtros a sus valores por defecto
func ClearFilters() FilterState {
	return DefaultFilters()
}

// Clone copia el estado sin compartir el slice de marcas
func (f FilterState) Clone() FilterState {
	f.Brands = slices.Clone(f.Brands)
	return f
}

// HasBrand indica si la marca está seleccionada
func (f FilterState) HasBrand(brand string) bool {
	return slices.Contains(f.Brands, brand)
}

// ToggleBrand agrega o quita una marca del filtro
func (f *FilterState) ToggleBrand(brand string) {
	if i := slices.Index(f.Brands, brand); i >= 0 {
		f.Brands = slices.Delete(slices.Clone(f.Brands), i, i+1)
		return
	}
	f.Brands = append(slices.Clone(f.Brands), brand)
}

// SetPrice actualiza solo los extremos indicados del rango
func (f *FilterState) SetPrice(lo, hi *float64) {
	if lo != nil {
		f.PriceRange.Min = *lo
	}
	if hi != nil {
		f.PriceRange.Max = *hi
	}
}

// ActiveCount cuenta las facetas activas. El rango de precio y la búsqueda no cuentan.
func (f FilterState) ActiveCount() int {
	n := 0
	if len(f.Brands) > 0 {
		n++
	}
	if f.MinRating > 0 {
		n++
	}
	if f.DiscountOnly {
		n++
	}
	return n
}

// ParseFilterState construye filtros desde query params.
// Los valores que no se pueden interpretar se ignoran y quedan por defecto.
func ParseFilterState(q url.Values) FilterState {
	f := DefaultFilters()

	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		f.PriceRange.Min = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		f.PriceRange.Max = v
	}

	// Una marca por parámetro: hay marcas con comas en el nombre
	for _, raw := range q["brand"] {
		b := strings.TrimSpace(raw)
		if b != "" && !f.HasBrand(b) {
			f.Brands = append(f.Brands, b)
		}
	}

	if v, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil && v > 0 {
		f.MinRating = v
	}
	if v, err := strconv.ParseBool(q.Get("discount")); err == nil {
		f.DiscountOnly = v
	}

	f.SortKey = ParseSortKey(q.Get("sort"))
	f.Search = strings.TrimSpace(q.Get("q"))

	return f
}

// Encode serializa los filtros como query params. Solo se emiten los valores
// distintos del defecto y las marcas van ordenadas, así la salida sirve como clave.
func (f FilterState) Encode() url.Values {
	q := url.Values{}
	if f.PriceRange.Min != DefaultMinPrice {
		q.Set("min_price", strconv.FormatFloat(f.PriceRange.Min, 'f', -1, 64))
	}
	if f.PriceRange.Max != DefaultMaxPrice {
		q.Set("max_price", strconv.FormatFloat(f.PriceRange.Max, 'f', -1, 64))
	}
	brands := slices.Clone(f.Brands)
	slices.Sort(brands)
	for _, b := range slices.Compact(brands) {
		q.Add("brand", b)
	}
	if f.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.DiscountOnly {
		q.Set("discount", "true")
	}
	if f.SortKey != SortNone {
		q.Set("sort", string(f.SortKey))
	}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	return q
}
