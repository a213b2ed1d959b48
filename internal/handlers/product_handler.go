package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"studentbuy/internal/cache"
	"studentbuy/internal/events"
	"studentbuy/internal/models"
	"studentbuy/internal/repository"
)

// ProductStore lo implementa repository.ProductRepository
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, id string, update bson.M) error
	SoftDelete(ctx context.Context, id string) error
}

// ProductHandler administra el alta, edición y baja de productos
type ProductHandler struct {
	repo        ProductStore
	invalidator cache.Invalidator
	publisher   events.Publisher
	origin      string
}

func NewProductHandler(repo ProductStore, invalidator cache.Invalidator, publisher events.Publisher, origin string) *ProductHandler {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ProductHandler{
		repo:        repo,
		invalidator: invalidator,
		publisher:   publisher,
		origin:      origin,
	}
}

// CreateProduct crea un nuevo producto
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product

	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := validateProduct(&product); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := h.repo.Create(c.Request.Context(), &product); err != nil {
		writeStoreError(c, err, "product", "failed to create product")
		return
	}

	h.changed(c.Request.Context(), product.ID, events.ActionCreated)
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct actualiza parcialmente un producto
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")
	var update models.ProductUpdate

	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	updateMap := buildUpdate(update)
	if len(updateMap) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no valid fields to update"})
		return
	}

	// Validar contra el producto actual para comprobar precio y descuento juntos
	current, err := h.repo.FindByID(c.Request.Context(), productID)
	if err != nil {
		writeStoreError(c, err, "product", "failed to update product")
		return
	}
	merged := applyUpdate(*current, update)
	if err := validateProduct(&merged); err != nil {
		writeValidationError(c, err)
		return
	}

	if err := h.repo.Update(c.Request.Context(), productID, updateMap); err != nil {
		writeStoreError(c, err, "product", "failed to update product")
		return
	}

	h.changed(c.Request.Context(), productID, events.ActionUpdated)
	c.JSON(http.StatusOK, SuccessResponse{Message: "product updated successfully"})
}

// DeleteProduct realiza un borrado lógico
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	if err := h.repo.SoftDelete(c.Request.Context(), productID); err != nil {
		writeStoreError(c, err, "product", "failed to delete product")
		return
	}

	h.changed(c.Request.Context(), productID, events.ActionDeleted)
	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted successfully"})
}

// changed invalida cachés locales y avisa al resto de instancias
func (h *ProductHandler) changed(ctx context.Context, id string, action events.Action) {
	h.invalidator.Product(ctx, id)

	event := events.ProductChanged{
		ID:     id,
		Action: action,
		Origin: h.origin,
		At:     time.Now().UTC(),
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s event for product %s: %v", action, id, err)
	}
}

// --- Métodos auxiliares ---

func buildUpdate(update models.ProductUpdate) bson.M {
	updateMap := bson.M{}
	if update.Title != nil {
		updateMap["title"] = *update.Title
	}
	if update.Description != nil {
		updateMap["description"] = *update.Description
	}
	if update.Price != nil {
		updateMap["price"] = *update.Price
	}
	if update.DiscountPrice != nil {
		updateMap["discount_price"] = *update.DiscountPrice
	}
	if update.Images != nil {
		updateMap["images"] = update.Images
	}
	if update.Category != nil {
		updateMap["category"] = *update.Category
	}
	if update.SubCategory != nil {
		updateMap["sub_category"] = *update.SubCategory
	}
	if update.Brand != nil {
		updateMap["brand"] = *update.Brand
	}
	if update.Ratings != nil {
		updateMap["ratings"] = *update.Ratings
	}
	if update.Stock != nil {
		updateMap["stock"] = *update.Stock
	}
	if update.Featured != nil {
		updateMap["featured"] = *update.Featured
	}
	if update.Trending != nil {
		updateMap["trending"] = *update.Trending
	}
	if update.AffiliateLinks != nil {
		updateMap["affiliate_links"] = update.AffiliateLinks
	}
	if update.Specs != nil {
		updateMap["specs"] = update.Specs
	}
	if update.Tags != nil {
		updateMap["tags"] = update.Tags
	}
	return updateMap
}

// applyUpdate devuelve p con los campos presentes en update
func applyUpdate(p models.Product, update models.ProductUpdate) models.Product {
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.DiscountPrice != nil {
		p.DiscountPrice = *update.DiscountPrice
	}
	if update.Images != nil {
		p.Images = update.Images
	}
	if update.Category != nil {
		p.Category = *update.Category
	}
	if update.Brand != nil {
		p.Brand = *update.Brand
	}
	if update.Ratings != nil {
		p.Ratings = *update.Ratings
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}
	if update.AffiliateLinks != nil {
		p.AffiliateLinks = update.AffiliateLinks
	}
	return p
}

// validateProduct valida los campos que el binding no cubre
func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(p.Brand) == "" {
		return &ValidationError{Field: "brand", Message: "brand is required"}
	}
	if !models.IsValidCategory(p.Category) {
		return &ValidationError{Field: "category", Message: "unknown category " + p.Category}
	}
	if p.Price <= 0 {
		return &ValidationError{Field: "price", Message: "price must be positive"}
	}
	if p.DiscountPrice < 0 || (p.DiscountPrice > 0 && p.DiscountPrice >= p.Price) {
		return &ValidationError{Field: "discount_price", Message: "discount price must be lower than price"}
	}
	if p.Stock < 0 {
		return &ValidationError{Field: "stock", Message: "stock cannot be negative"}
	}
	if p.Ratings.Average < 0 || p.Ratings.Average > 5 || p.Ratings.Count < 0 {
		return &ValidationError{Field: "ratings", Message: "rating average must be between 0 and 5"}
	}
	// Cualquier tienda vale; las que no conocemos se listan después de las habituales
	for retailer, link := range p.AffiliateLinks {
		if strings.TrimSpace(retailer) == "" {
			return &ValidationError{Field: "affiliate_links", Message: "retailer name is required"}
		}
		if link == "" {
			continue
		}
		if u, err := url.Parse(link); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return &ValidationError{Field: "affiliate_links", Message: "invalid link for " + retailer}
		}
	}
	return nil
}

// ValidationError representa un error de validación
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func writeValidationError(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Message, Field: verr.Field})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// writeStoreError traduce los errores del repositorio a códigos HTTP
func writeStoreError(c *gin.Context, err error, entity, failMsg string) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + entity + " ID"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: entity + " not found"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: entity + " already exists"})
	default:
		log.Printf("⚠️ %s: %v", failMsg, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: failMsg})
	}
}
