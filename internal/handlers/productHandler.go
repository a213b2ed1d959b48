package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"studentbuy/internal/cache"
	"studentbuy/internal/catalog"
	"studentbuy/internal/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
	maxShowcase     = 50

	// (maxPage-1)*maxPageSize no desborda int
	maxPage = math.MaxInt / maxPageSize
)

// CatalogHandler atiende las consultas de lectura del catálogo
type CatalogHandler struct {
	source catalog.Source
	cache  *cache.Cache
	quoter catalog.PriceQuoter
}

func NewCatalogHandler(source catalog.Source, c *cache.Cache) *CatalogHandler {
	return &CatalogHandler{
		source: source,
		cache:  c,
		quoter: catalog.DefaultQuoter,
	}
}

// WithQuoter reemplaza los precios de demostración por otra fuente
func (h *CatalogHandler) WithQuoter(q catalog.PriceQuoter) *CatalogHandler {
	h.quoter = q
	return h
}

// Estructuras para respuestas
type ProductListResponse struct {
	Data       []models.Product    `json:"data"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
	Facets     catalog.Facets      `json:"facets"`
	Filters    catalog.FilterState `json:"filters"`
}

type ProductDetailResponse struct {
	models.Product
	EffectivePrice     float64                   `json:"effective_price"`
	DiscountPercentage int                       `json:"discount_percentage"`
	AffiliateOptions   []catalog.AffiliateOption `json:"affiliate_options"`
}

type ShowcaseResponse struct {
	Tab  catalog.ShowcaseTab `json:"tab"`
	Data []models.Product    `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// GET /v1/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	h.list(c, strings.TrimSpace(c.Query("category")))
}

// GET /v1/categories/:slug/products
func (h *CatalogHandler) GetCategoryProducts(c *gin.Context) {
	category, ok := catalog.CategoryBySlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "category not found"})
		return
	}
	h.list(c, category.Name)
}

func (h *CatalogHandler) list(c *gin.Context, category string) {
	filters := catalog.ParseFilterState(c.Request.URL.Query())
	page, pageSize := getPaginationParams(c)

	cacheKey := fmt.Sprintf("%s%s:%s:p%d_s%d",
		cache.ListKeyPrefix, strings.ToLower(category), filters.Encode().Encode(), page, pageSize)

	var cached ProductListResponse
	if found, _ := h.cache.Unmarshal(cacheKey, &cached); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.source.FetchProducts(c.Request.Context())
	if err != nil {
		log.Println("⚠️ Error fetching products:", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch products"})
		return
	}

	result := catalog.Query(products, category, filters)
	total := len(result.Products)

	response := ProductListResponse{
		Data:       paginate(result.Products, page, pageSize),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
		Facets:     result.Facets,
		Filters:    filters,
	}

	if err := h.cache.Marshal(cacheKey, response); err != nil {
		log.Println("⚠️ Error caching product list:", err)
	}
	c.JSON(http.StatusOK, response)
}

// GET /v1/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	cacheKey := cache.CategoryKeyPrefix + "all"

	var cached []catalog.Category
	if found, _ := h.cache.Unmarshal(cacheKey, &cached); found {
		c.JSON(http.StatusOK, gin.H{"data": cached})
		return
	}

	products, err := h.source.FetchProducts(c.Request.Context())
	if err != nil {
		log.Println("⚠️ Error fetching products:", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch categories"})
		return
	}

	categories := catalog.Categories(products)
	_ = h.cache.Marshal(cacheKey, categories)
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GET /v1/products/showcase?tab=trending|offers|latest&limit=8
func (h *CatalogHandler) GetShowcase(c *gin.Context) {
	tab, ok := catalog.ParseShowcaseTab(c.Query("tab"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid showcase tab", Field: "tab"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(catalog.DefaultShowcaseLimit)))
	if err != nil || limit < 1 {
		limit = catalog.DefaultShowcaseLimit
	}
	limit = min(limit, maxShowcase)

	cacheKey := fmt.Sprintf("%s%s:%d", cache.ShowcaseKeyPrefix, tab, limit)
	var cached ShowcaseResponse
	if found, _ := h.cache.Unmarshal(cacheKey, &cached); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.source.FetchProducts(c.Request.Context())
	if err != nil {
		log.Println("⚠️ Error fetching products:", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch products"})
		return
	}

	response := ShowcaseResponse{Tab: tab, Data: catalog.Showcase(products, tab, limit)}
	if response.Data == nil {
		response.Data = []models.Product{}
	}
	_ = h.cache.Marshal(cacheKey, response)
	c.JSON(http.StatusOK, response)
}

// GET /v1/products/:id
func (h *CatalogHandler) GetProductByID(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	cacheKey := cache.ProductKeyPrefix + productID

	var cached ProductDetailResponse
	if found, _ := h.cache.Unmarshal(cacheKey, &cached); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.source.FetchProducts(c.Request.Context())
	if err != nil {
		log.Println("⚠️ Error fetching products:", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "error fetching product"})
		return
	}

	product, ok := catalog.FindByID(products, productID)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}

	response := ProductDetailResponse{
		Product:            product,
		EffectivePrice:     product.EffectivePrice(),
		DiscountPercentage: product.DiscountPercentage(),
		AffiliateOptions:   catalog.ComputeAffiliateOptionsWith(product, h.quoter),
	}

	_ = h.cache.Marshal(cacheKey, response)
	c.JSON(http.StatusOK, response)
}

// --- Métodos auxiliares ---

// getPaginationParams obtiene y valida los parámetros de paginación
func getPaginationParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = defaultPage
	}
	page = min(page, maxPage)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	return page, pageSize
}

func paginate(products []models.Product, page, pageSize int) []models.Product {
	if pageSize < 1 || page-1 >= totalPages(len(products), pageSize) {
		return []models.Product{}
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []models.Product{}
	}
	end := min(start+pageSize, len(products))
	return products[start:end]
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
