// Package seed contiene el catálogo inicial de la tienda.
package seed

import (
	"context"
	"slices"
	"time"

	"studentbuy/internal/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Products devuelve una copia del catálogo inicial
func Products() []models.Product {
	return slices.Clone(products)
}

var products = []models.Product{
	{
		ID:             "1",
		Title:          "HP Pavilion 15 Laptop",
		Description:    "Perfect for students with its powerful performance and affordability.",
		Price:          52999,
		DiscountPrice:  49999,
		Images:         []string{"/product-laptop1.jpg"},
		Category:       models.CategoryElectronics,
		SubCategory:    "Laptops",
		Brand:          "HP",
		Ratings:        models.Ratings{Average: 4.5, Count: 128},
		Stock:          15,
		Featured:       true,
		Trending:       true,
		AffiliateLinks: map[string]string{"amazon": "https://amazon.in/hp-pavilion", "flipkart": "https://flipkart.com/hp-pavilion"},
		Tags:           []string{"laptop", "windows"},
		CreatedAt:      ts("2023-06-15T10:00:00Z"),
	},
	{
		ID:             "2",
		Title:          "Campus Casual Shoes",
		Description:    "Comfortable and stylish shoes perfect for daily college wear.",
		Price:          1999,
		DiscountPrice:  1499,
		Images:         []string{"/product-shoes1.jpg"},
		Category:       models.CategoryFashion,
		SubCategory:    "Footwear",
		Brand:          "Campus",
		Ratings:        models.Ratings{Average: 4.3, Count: 210},
		Stock:          50,
		Featured:       true,
		Trending:       true,
		AffiliateLinks: map[string]string{"amazon": "https://amazon.in/campus-shoes", "myntra": "https://myntra.com/campus-shoes"},
		Tags:           []string{"shoes"},
		CreatedAt:      ts("2023-07-20T10:00:00Z"),
	},
	{
		ID:             "3",
		Title:          "Classmate Premium Notebooks - Pack of 6",
		Description:    "Long-lasting, high-quality notebooks for all your study needs.",
		Price:          450,
		DiscountPrice:  399,
		Images:         []string{"/product-notebooks1.jpg"},
		Category:       models.CategoryStationery,
		SubCategory:    "Notebooks",
		Brand:          "Classmate",
		Ratings:        models.Ratings{Average: 4.7, Count: 89},
		Stock:          200,
		Featured:       true,
		AffiliateLinks: map[string]string{"amazon": "https://amazon.in/classmate-notebooks", "flipkart": "https://flipkart.com/classmate-notebooks"},
		Tags:           []string{"notebook"},
		CreatedAt:      ts("2023-08-05T10:00:00Z"),
	},
	{
		ID:             "4",
		Title:          "boAt Airdopes 131 TWS Earbuds",
		Description:    "Wireless earbuds with immersive sound and long battery life.",
		Price:          1999,
		DiscountPrice:  1299,
		Images:         []string{"/product-earbuds1.jpg"},
		Category:       models.CategoryElectronics,
		SubCategory:    "Audio",
		Brand:          "boAt",
		Ratings:        models.Ratings{Average: 4.2, Count: 315},
		Stock:          75,
		Featured:       true,
		Trending:       true,
		AffiliateLinks: map[string]string{"amazon": "https://amazon.in/boat-airdopes", "flipkart": "https://flipkart.com/boat-airdopes"},
		Tags:           []string{"earbuds", "wireless"},
		CreatedAt:      ts("2023-05-10T10:00:00Z"),
	},
	{
		ID:             "5",
		Title:          "Wildcraft Laptop Backpack",
		Description:    "Durable, spacious backpack with dedicated laptop compartment.",
		Price:          2499,
		DiscountPrice:  1999,
		Images:         []string{"/product-backpack1.jpg"},
		Category:       models.CategoryFashion,
		SubCategory:    "Bags",
		Brand:          "Wildcraft",
		Ratings:        models.Ratings{Average: 4.4, Count: 178},
		Stock:          40,
		Featured:       true,
		AffiliateLinks: map[string]string{"amazon": "https://amazon.in/wildcraft-backpack", "myntra": "https://myntra.com/wildcraft-backpack"},
		Tags:           []string{"backpack"},
		CreatedAt:      ts("2023-09-01T10:00:00Z"),
	},
	{
		ID:             "6",
		Title:          "Casio FX-991EX Scientific Calculator",
		Description:    "Advanced scientific calculator for engineering and science students.",
		Price:          1795,
		Images:         []string{"/product-calculator1.jpg"},
		Category:       models.CategoryStationery,
		SubCategory:    "Calculators",
		Brand:          "Casio",
		Ratings:        models.Ratings{Average: 4.8, Count: 92},
		Stock:          30,
		Featured:       true,
		AffiliateLinks: map[string]string{"amazon": "https://amazon.in/casio-calculator", "flipkart": "https://flipkart.com/casio-calculator"},
		Tags:           []string{"calculator", "engineering"},
		CreatedAt:      ts("2023-06-25T10:00:00Z"),
	},
	{
		ID:             "7",
		Title:          "OnePlus Nord CE 2 5G",
		Description:    "Feature-packed smartphone with great camera and fast charging.",
		Price:          24999,
		DiscountPrice:  22999,
		Images:         []string{"/product-phone1.jpg"},
		Category:       models.CategoryElectronics,
		SubCategory:    "Smartphones",
		Brand:          "OnePlus",
		Ratings:        models.Ratings{Average: 4.3, Count: 267},
		Stock:          25,
		Featured:       true,
		Trending:       true,
		AffiliateLinks: map[string]string{"amazon": "https://amazon.in/oneplus-nord", "flipkart": "https://flipkart.com/oneplus-nord"},
		Tags:           []string{"smartphone", "5g"},
		CreatedAt:      ts("2023-08-15T10:00:00Z"),
	},
	{
		ID:             "8",
		Title:          "Allen Kota JEE Complete Study Material",
		Description:    "Comprehensive study material for JEE preparation.",
		Price:          8999,
		DiscountPrice:  7999,
		Images:         []string{"/product-books1.jpg"},
		Category:       models.CategoryBooks,
		SubCategory:    "Study Material",
		Brand:          "Allen",
		Ratings:        models.Ratings{Average: 4.6, Count: 56},
		Stock:          15,
		Featured:       true,
		AffiliateLinks: map[string]string{"amazon": "https://amazon.in/allen-study-material", "flipkart": "https://flipkart.com/allen-study-material"},
		Tags:           []string{"jee", "books"},
		CreatedAt:      ts("2023-07-10T10:00:00Z"),
	},
}

// Static sirve el catálogo inicial en memoria. Se usa cuando no hay MongoDB configurado.
type Static struct {
	products []models.Product
}

func NewStatic() *Static {
	return &Static{products: Products()}
}

func (s *Static) FetchProducts(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.products), nil
}
