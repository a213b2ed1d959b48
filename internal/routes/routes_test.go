package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"studentbuy/internal/cache"
	"studentbuy/internal/handlers"
	"studentbuy/internal/seed"
)

func serve(r http.Handler, method, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code
}

func TestRegisterRoutes_ReadOnlyCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := cache.New(time.Minute)
	defer c.Close()

	var hits int
	counter := func(ctx *gin.Context) {
		hits++
		ctx.Next()
	}

	router := gin.New()
	RegisterRoutes(router, Handlers{
		Catalog: handlers.NewCatalogHandler(seed.NewStatic(), c),
		Health:  handlers.Health(nil),
	}, counter)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/products"))
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/products/showcase"))
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/products/1"))
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/categories"))
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/categories/books/products"))
	assert.Equal(t, 5, hits)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz"))
	assert.Equal(t, 5, hits, "health check bypasses v1 middleware")

	// sin MongoDB no hay rutas de escritura
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/v1/products"))
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/v1/users"))
}
