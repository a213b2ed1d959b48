package catalog

import (
	"strings"

	"studentbuy/internal/models"
)

// Category datos de presentación de una categoría
type Category struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Banner       string `json:"banner"`
	ProductCount int    `json:"product_count"`
}

const defaultCategoryDescription = "Browse our wide range of products designed for Indian students at competitive prices."

var categoryDescriptions = map[string]string{
	models.CategoryFashion:     "Stylish, comfortable, and affordable fashion for students. Find the latest trends in campus wear at the best prices.",
	models.CategoryElectronics: "Essential gadgets and devices for your academic needs. Compare prices across platforms for the best deals.",
	models.CategoryStationery:  "Quality stationery supplies for all your study requirements. Stock up on notebooks, pens, and more at student-friendly prices.",
	models.CategoryGadgets:     "Smart devices to enhance your student life. Find the latest tech at prices that won't break your budget.",
	models.CategoryBooks:       "Textbooks, reference materials, and study guides for all courses. Save on your educational materials with our price comparison.",
}

func newCategory(name string) Category {
	slug := strings.ToLower(name)
	desc, ok := categoryDescriptions[name]
	if !ok {
		desc = defaultCategoryDescription
	}
	banner := "/category-banner-" + slug + ".jpg"
	if !ok {
		banner = "/category-banner-default.jpg"
	}
	return Category{Name: name, Slug: slug, Description: desc, Banner: banner}
}

// Categories lista todas las categorías con la cantidad de productos de cada una
func Categories(products []models.Product) []Category {
	out := make([]Category, 0, len(models.AllCategories))
	for _, name := range models.AllCategories {
		c := newCategory(name)
		for _, p := range products {
			if strings.EqualFold(p.Category, name) {
				c.ProductCount++
			}
		}
		out = append(out, c)
	}
	return out
}

// CategoryBySlug resuelve el slug de la URL (p. ej. "electronics")
func CategoryBySlug(slug string) (Category, bool) {
	for _, name := range models.AllCategories {
		if strings.EqualFold(name, strings.TrimSpace(slug)) {
			return newCategory(name), true
		}
	}
	return Category{}, false
}
