package models

import (
	"time"
)

// Categorías disponibles en la tienda
const (
	CategoryFashion     = "Fashion"
	CategoryElectronics = "Electronics"
	CategoryStationery  = "Stationery"
	CategoryGadgets     = "Gadgets"
	CategoryBooks       = "Books"
	CategoryLifestyle   = "Lifestyle"
)

// AllCategories lista las categorías en orden de presentación
var AllCategories = []string{
	CategoryFashion,
	CategoryElectronics,
	CategoryStationery,
	CategoryGadgets,
	CategoryBooks,
	CategoryLifestyle,
}

// IsValidCategory indica si c es una categoría conocida (comparación exacta)
func IsValidCategory(c string) bool {
	for _, v := range AllCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Ratings agrupa la puntuación media y el número de reseñas
type Ratings struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

// Product representa un producto del catálogo
type Product struct {
	ID             string            `json:"id" bson:"_id,omitempty"`
	Title          string            `json:"title" bson:"title" binding:"required,max=100"`
	Description    string            `json:"description" bson:"description" binding:"required"`
	Price          float64           `json:"price" bson:"price" binding:"required,gt=0"`
	DiscountPrice  float64           `json:"discount_price" bson:"discount_price" binding:"gte=0"`
	Images         []string          `json:"images" bson:"images" binding:"required,min=1"`
	Category       string            `json:"category" bson:"category" binding:"required"`
	SubCategory    string            `json:"sub_category,omitempty" bson:"sub_category,omitempty"`
	Brand          string            `json:"brand" bson:"brand" binding:"required"`
	Ratings        Ratings           `json:"ratings" bson:"ratings"`
	Stock          int               `json:"stock" bson:"stock" binding:"gte=0"`
	Featured       bool              `json:"featured" bson:"featured"`
	Trending       bool              `json:"trending" bson:"trending"`
	AffiliateLinks map[string]string `json:"affiliate_links,omitempty" bson:"affiliate_links,omitempty"`
	Specs          map[string]string `json:"specs,omitempty" bson:"specs,omitempty"`
	Tags           []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	IsDeleted      bool              `json:"-" bson:"is_deleted"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" bson:"updated_at"`
}

// ProductUpdate representa los campos actualizables de un producto
type ProductUpdate struct {
	Title          *string           `json:"title,omitempty"`
	Description    *string           `json:"description,omitempty"`
	Price          *float64          `json:"price,omitempty"`
	DiscountPrice  *float64          `json:"discount_price,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Category       *string           `json:"category,omitempty"`
	SubCategory    *string           `json:"sub_category,omitempty"`
	Brand          *string           `json:"brand,omitempty"`
	Ratings        *Ratings          `json:"ratings,omitempty"`
	Stock          *int              `json:"stock,omitempty"`
	Featured       *bool             `json:"featured,omitempty"`
	Trending       *bool             `json:"trending,omitempty"`
	AffiliateLinks map[string]string `json:"affiliate_links,omitempty"`
	Specs          map[string]string `json:"specs,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
}
