package models

import "github.com/shopspring/decimal"

// EffectivePrice devuelve el precio con descuento si existe, si no el precio de lista.
// Es el precio que se usa para filtrar, ordenar y comparar tiendas.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// HasDiscount indica si el producto tiene un descuento real (menor al precio de lista)
func (p Product) HasDiscount() bool {
	return p.DiscountPrice > 0 && p.DiscountPrice < p.Price
}

// DiscountPercentage calcula el porcentaje de descuento redondeado al entero más cercano
func (p Product) DiscountPercentage() int {
	if p.DiscountPrice <= 0 || p.Price <= 0 {
		return 0
	}
	price := decimal.NewFromFloat(p.Price)
	off := price.Sub(decimal.NewFromFloat(p.DiscountPrice)).
		Div(price).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return int(off.IntPart())
}

// ScalePrice multiplica un precio por factor y redondea a unidades enteras
func ScalePrice(price float64, factor float64) float64 {
	v, _ := decimal.NewFromFloat(price).
		Mul(decimal.NewFromFloat(factor)).
		Round(0).
		Float64()
	return v
}
