package cache

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Prefijos de claves usados por los handlers
const (
	ProductKeyPrefix  = "product:"
	ListKeyPrefix     = "products:list:"
	CategoryKeyPrefix = "categories:"
	ShowcaseKeyPrefix = "products:showcase:"
)

type CacheItem struct {
	Value      any
	Expiration int64
}

// Cache almacén en memoria con expiración por clave
type Cache struct {
	items map[string]CacheItem
	mu    sync.RWMutex
	ttl   time.Duration

	stop chan struct{}
	once sync.Once
}

// New crea un caché y arranca la limpieza periódica de expirados
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]CacheItem),
		ttl:   defaultTTL,
		stop:  make(chan struct{}),
	}
	go c.cleanupExpired(cleanupInterval(defaultTTL))
	return c
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > 5*time.Minute {
		return 5 * time.Minute
	}
	return ttl
}

// Close detiene la limpieza periódica
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Set guarda un valor en caché
func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}

	c.items[key] = CacheItem{
		Value:      value,
		Expiration: time.Now().Add(duration).UnixNano(),
	}
}

// GetValue obtiene un valor del caché
func (c *Cache) GetValue(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found {
		return nil, false
	}

	// Verificar si expiró
	if time.Now().UnixNano() > item.Expiration {
		return nil, false
	}

	return item.Value, true
}

// Delete elimina un valor del caché
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeleteByPrefix elimina todas las claves que empiecen con alguno de los prefijos
func (c *Cache) DeleteByPrefix(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(c.items, key)
				break
			}
		}
	}
}

// InvalidateProduct borra la entrada del producto y todos los listados derivados
func (c *Cache) InvalidateProduct(id string) {
	c.Delete(ProductKeyPrefix + id)
	c.DeleteByPrefix(ListKeyPrefix, CategoryKeyPrefix, ShowcaseKeyPrefix)
}

// Clear limpia todo el caché
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]CacheItem)
}

// cleanupExpired limpia items expirados periódicamente
func (c *Cache) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for key, item := range c.items {
		if now > item.Expiration {
			delete(c.items, key)
		}
	}
}

// Size retorna el número de items en caché
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Marshal serializa y guarda en caché
func (c *Cache) Marshal(key string, value any, ttl ...time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.Set(key, data, ttl...)
	return nil
}

// Unmarshal obtiene y deserializa del caché
func (c *Cache) Unmarshal(key string, target any) (bool, error) {
	data, found := c.GetValue(key)
	if !found {
		return false, nil
	}

	bytes, ok := data.([]byte)
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(bytes, target); err != nil {
		return false, err
	}

	return true, nil
}
