package catalog

import (
	"cmp"
	"slices"
	"strings"

	"studentbuy/internal/models"
)

const (
	RetailerAmazon   = "amazon"
	RetailerFlipkart = "flipkart"
	RetailerMyntra   = "myntra"
)

// orden de desempate entre tiendas con el mismo precio
var retailerOrder = []string{RetailerAmazon, RetailerFlipkart, RetailerMyntra}

var retailerNames = map[string]string{
	RetailerAmazon:   "Amazon",
	RetailerFlipkart: "Flipkart",
	RetailerMyntra:   "Myntra",
}

// AffiliateOption enlace de compra en una tienda con su precio
type AffiliateOption struct {
	Retailer  string  `json:"retailer"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Link      string  `json:"link"`
	BestPrice bool    `json:"best_price"`
}

// PriceQuoter obtiene el precio de un producto en una tienda
type PriceQuoter interface {
	Quote(product models.Product, retailer string) float64
}

// SyntheticQuoter reproduce los precios de demostración: amazon usa el precio
// efectivo y el resto aplica un multiplicador fijo. No son precios reales;
// hay que reemplazarlo por un quoter que consulte cada tienda.
type SyntheticQuoter struct {
	Multipliers map[string]float64
}

// DefaultQuoter multiplicadores de la demo (flipkart -2%, myntra +2%)
var DefaultQuoter = SyntheticQuoter{
	Multipliers: map[string]float64{
		RetailerAmazon:   1.00,
		RetailerFlipkart: 0.98,
		RetailerMyntra:   1.02,
	},
}

func (q SyntheticQuoter) Quote(product models.Product, retailer string) float64 {
	factor, ok := q.Multipliers[retailer]
	if !ok || factor == 1 {
		return product.EffectivePrice()
	}
	return models.ScalePrice(product.EffectivePrice(), factor)
}

// ComputeAffiliateOptions arma las opciones de compra con DefaultQuoter
func ComputeAffiliateOptions(product models.Product) []AffiliateOption {
	return ComputeAffiliateOptionsWith(product, DefaultQuoter)
}

// ComputeAffiliateOptionsWith arma una opción por cada enlace no vacío, ordenadas
// por precio ascendente. La primera queda marcada como mejor precio.
func ComputeAffiliateOptionsWith(product models.Product, quoter PriceQuoter) []AffiliateOption {
	retailers := make([]string, 0, len(product.AffiliateLinks))
	for retailer, link := range product.AffiliateLinks {
		if strings.TrimSpace(link) != "" {
			retailers = append(retailers, retailer)
		}
	}
	slices.SortFunc(retailers, compareRetailers)

	options := make([]AffiliateOption, 0, len(retailers))
	for _, retailer := range retailers {
		options = append(options, AffiliateOption{
			Retailer: retailer,
			Name:     retailerName(retailer),
			Price:    quoter.Quote(product, retailer),
			Link:     product.AffiliateLinks[retailer],
		})
	}

	slices.SortStableFunc(options, func(a, b AffiliateOption) int {
		return cmp.Compare(a.Price, b.Price)
	})
	if len(options) > 0 {
		options[0].BestPrice = true
	}
	return options
}

func compareRetailers(a, b string) int {
	ia, ib := slices.Index(retailerOrder, a), slices.Index(retailerOrder, b)
	switch {
	case ia >= 0 && ib >= 0:
		return cmp.Compare(ia, ib)
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	}
	return strings.Compare(a, b)
}

func retailerName(retailer string) string {
	if name, ok := retailerNames[retailer]; ok {
		return name
	}
	if retailer == "" {
		return retailer
	}
	return strings.ToUpper(retailer[:1]) + retailer[1:]
}
