package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"studentbuy/internal/catalog"
	"studentbuy/internal/models"
	"studentbuy/internal/repository"
)

// UserStore lo implementa repository.UserRepository
type UserStore interface {
	Create(ctx context.Context, reg models.UserRegistration) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
	ClearWishlist(ctx context.Context, userID string) error
}

type UserHandler struct {
	users  UserStore
	source catalog.Source
}

func NewUserHandler(users UserStore, source catalog.Source) *UserHandler {
	return &UserHandler{users: users, source: source}
}

type WishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type WishlistResponse struct {
	Data  []models.Product `json:"data"`
	Total int              `json:"total"`
}

// POST /v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var reg models.UserRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := validatePreferences(reg.Preferences); err != nil {
		writeValidationError(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), reg)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered", Field: "email"})
			return
		}
		writeStoreError(c, err, "user", "could not register user")
		return
	}

	log.Printf("✅ User %s registered", user.ID)
	c.JSON(http.StatusCreated, user)
}

// GET /v1/users/:id/wishlist
// Los IDs que ya no existen en el catálogo se omiten sin error.
func (h *UserHandler) GetWishlist(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err, "user", "could not fetch wishlist")
		return
	}

	products, err := h.source.FetchProducts(c.Request.Context())
	if err != nil {
		log.Println("⚠️ Error fetching products:", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch wishlist"})
		return
	}

	items := make([]models.Product, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		if p, ok := catalog.FindByID(products, id); ok {
			items = append(items, p)
		}
	}

	c.JSON(http.StatusOK, WishlistResponse{Data: items, Total: len(items)})
}

// POST /v1/users/:id/wishlist
func (h *UserHandler) AddToWishlist(c *gin.Context) {
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	products, err := h.source.FetchProducts(c.Request.Context())
	if err != nil {
		log.Println("⚠️ Error fetching products:", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update wishlist"})
		return
	}
	if _, ok := catalog.FindByID(products, req.ProductID); !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found", Field: "product_id"})
		return
	}

	if err := h.users.AddToWishlist(c.Request.Context(), c.Param("id"), req.ProductID); err != nil {
		writeStoreError(c, err, "user", "could not update wishlist")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "product added to wishlist"})
}

// DELETE /v1/users/:id/wishlist/:productId
func (h *UserHandler) RemoveFromWishlist(c *gin.Context) {
	if err := h.users.RemoveFromWishlist(c.Request.Context(), c.Param("id"), c.Param("productId")); err != nil {
		writeStoreError(c, err, "user", "could not update wishlist")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "product removed from wishlist"})
}

// DELETE /v1/users/:id/wishlist
func (h *UserHandler) ClearWishlist(c *gin.Context) {
	if err := h.users.ClearWishlist(c.Request.Context(), c.Param("id")); err != nil {
		writeStoreError(c, err, "user", "could not clear wishlist")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "wishlist cleared"})
}

func validatePreferences(p *models.Preferences) error {
	if p == nil {
		return nil
	}
	if p.PriceRange.Min < 0 || p.PriceRange.Max < p.PriceRange.Min {
		return &ValidationError{Field: "preferences.price_range", Message: "invalid price range"}
	}
	switch p.Language {
	case models.LanguageEnglish, models.LanguageHindi:
	default:
		return &ValidationError{Field: "preferences.language", Message: "language must be en or hi"}
	}
	for _, cat := range p.Categories {
		if !models.IsValidCategory(cat) {
			return &ValidationError{Field: "preferences.categories", Message: "unknown category " + cat}
		}
	}
	return nil
}
