package cache

import (
	"context"
	"log"

	"studentbuy/internal/events"
)

// Invalidator agrupa las capas de caché que dependen del catálogo
type Invalidator struct {
	Local    *Cache
	Snapshot *Snapshot
}

// Product descarta todo lo derivado del producto id
func (i Invalidator) Product(ctx context.Context, id string) {
	if i.Local != nil {
		i.Local.InvalidateProduct(id)
	}
	if i.Snapshot != nil {
		if err := i.Snapshot.Invalidate(ctx); err != nil {
			log.Println("⚠️ Failed to invalidate catalog snapshot:", err)
		}
	}
}

// OnProductChanged invalida por eventos de otras instancias. Los propios ya se aplicaron al publicar.
func (i Invalidator) OnProductChanged(origin string) events.Handler {
	return func(ctx context.Context, event events.ProductChanged) error {
		if event.Origin == origin {
			return nil
		}
		i.Product(ctx, event.ID)
		return nil
	}
}
