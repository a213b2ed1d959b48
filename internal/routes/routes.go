package routes

import (
	"github.com/gin-gonic/gin"

	"studentbuy/internal/handlers"
)

// Handlers agrupa los handlers de la API. Products y Users son nil cuando no hay MongoDB.
type Handlers struct {
	Catalog  *handlers.CatalogHandler
	Products *handlers.ProductHandler
	Users    *handlers.UserHandler
	Health   gin.HandlerFunc
}

func RegisterRoutes(router *gin.Engine, h Handlers, middleware ...gin.HandlerFunc) {
	if h.Health != nil {
		router.GET("/healthz", h.Health)
	}

	v1 := router.Group("/v1", middleware...)
	{
		v1.GET("/products", h.Catalog.GetProducts)
		v1.GET("/products/showcase", h.Catalog.GetShowcase)
		v1.GET("/products/:id", h.Catalog.GetProductByID)
		v1.GET("/categories", h.Catalog.GetCategories)
		v1.GET("/categories/:slug/products", h.Catalog.GetCategoryProducts)
	}

	if h.Products != nil {
		v1.POST("/products", h.Products.CreateProduct)
		v1.PATCH("/products/:id", h.Products.UpdateProduct)
		v1.DELETE("/products/:id", h.Products.DeleteProduct)
	}

	if h.Users != nil {
		v1.POST("/users", h.Users.Register)
		v1.GET("/users/:id/wishlist", h.Users.GetWishlist)
		v1.POST("/users/:id/wishlist", h.Users.AddToWishlist)
		v1.DELETE("/users/:id/wishlist", h.Users.ClearWishlist)
		v1.DELETE("/users/:id/wishlist/:productId", h.Users.RemoveFromWishlist)
	}
}
