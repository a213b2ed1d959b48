package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"studentbuy/internal/cache"
	"studentbuy/internal/events"
	"studentbuy/internal/models"
	"studentbuy/internal/repository"
	"studentbuy/internal/seed"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryProducts guarda productos en memoria y sirve también como catalog.Source
type memoryProducts struct {
	mu       sync.Mutex
	products []models.Product
	fetches  int
	fetchErr error
	nextID   int
}

func newMemoryProducts() *memoryProducts {
	return &memoryProducts{products: seed.Products()}
}

func (m *memoryProducts) FetchProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		if !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProducts) Create(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = fmt.Sprintf("p%d", m.nextID)
	p.CreatedAt = time.Now().UTC()
	m.products = append(m.products, *p)
	return nil
}

func (m *memoryProducts) index(id string) int {
	return slices.IndexFunc(m.products, func(p models.Product) bool { return p.ID == id && !p.IsDeleted })
}

func (m *memoryProducts) FindByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if strings.TrimSpace(id) == "" {
		return nil, repository.ErrInvalidID
	}
	i := m.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := m.products[i]
	return &p, nil
}

func (m *memoryProducts) Update(ctx context.Context, id string, update bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	if v, ok := update["price"].(float64); ok {
		m.products[i].Price = v
	}
	if v, ok := update["discount_price"].(float64); ok {
		m.products[i].DiscountPrice = v
	}
	if v, ok := update["title"].(string); ok {
		m.products[i].Title = v
	}
	return nil
}

func (m *memoryProducts) SoftDelete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	m.products[i].IsDeleted = true
	return nil
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*models.User{}}
}

func (m *memoryUsers) Create(ctx context.Context, reg models.UserRegistration) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, reg.Email) {
			return nil, repository.ErrDuplicate
		}
	}
	u := &models.User{
		ID:           fmt.Sprintf("u%d", len(m.users)+1),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: "hashed:" + reg.Password,
		Role:         models.RoleUser,
		Wishlist:     []string{},
		ReferralCode: "ABCD1234",
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	copied.Wishlist = slices.Clone(u.Wishlist)
	return &copied, nil
}

func (m *memoryUsers) AddToWishlist(ctx context.Context, userID, productID string) error {
	return m.update(userID, func(u *models.User) {
		if !slices.Contains(u.Wishlist, productID) {
			u.Wishlist = append(u.Wishlist, productID)
		}
	})
}

func (m *memoryUsers) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return m.update(userID, func(u *models.User) {
		u.Wishlist = slices.DeleteFunc(u.Wishlist, func(id string) bool { return id == productID })
	})
}

func (m *memoryUsers) ClearWishlist(ctx context.Context, userID string) error {
	return m.update(userID, func(u *models.User) { u.Wishlist = []string{} })
}

func (m *memoryUsers) update(id string, fn func(*models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(u)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ProductChanged
}

func (p *recordingPublisher) Publish(_ context.Context, e events.ProductChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type testServer struct {
	router    *gin.Engine
	products  *memoryProducts
	users     *memoryUsers
	publisher *recordingPublisher
	cache     *cache.Cache
}

// newTestServer replica el cableado de routes.RegisterRoutes sin importar ese paquete
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		router:    gin.New(),
		products:  newMemoryProducts(),
		users:     newMemoryUsers(),
		publisher: &recordingPublisher{},
		cache:     cache.New(time.Minute),
	}
	t.Cleanup(s.cache.Close)

	catalogH := NewCatalogHandler(s.products, s.cache)
	productH := NewProductHandler(s.products, cache.Invalidator{Local: s.cache}, s.publisher, "test")
	userH := NewUserHandler(s.users, s.products)

	v1 := s.router.Group("/v1")
	v1.GET("/products", catalogH.GetProducts)
	v1.GET("/products/showcase", catalogH.GetShowcase)
	v1.GET("/products/:id", catalogH.GetProductByID)
	v1.GET("/categories", catalogH.GetCategories)
	v1.GET("/categories/:slug/products", catalogH.GetCategoryProducts)
	v1.POST("/products", productH.CreateProduct)
	v1.PATCH("/products/:id", productH.UpdateProduct)
	v1.DELETE("/products/:id", productH.DeleteProduct)
	v1.POST("/users", userH.Register)
	v1.GET("/users/:id/wishlist", userH.GetWishlist)
	v1.POST("/users/:id/wishlist", userH.AddToWishlist)
	v1.DELETE("/users/:id/wishlist", userH.ClearWishlist)
	v1.DELETE("/users/:id/wishlist/:productId", userH.RemoveFromWishlist)

	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func productIDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
