package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentbuy/internal/events"
	"studentbuy/internal/seed"
)

func TestInvalidator_OnProductChanged(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	local := New(time.Minute)
	defer local.Close()
	snap := NewSnapshot(client, seed.NewStatic(), time.Minute)

	ctx := context.Background()
	_, err := snap.FetchProducts(ctx)
	require.NoError(t, err)
	snap.Wait()

	inv := Invalidator{Local: local, Snapshot: snap}
	handle := inv.OnProductChanged("api-1")

	local.Set(ProductKeyPrefix+"1", "cached")
	require.NoError(t, handle(ctx, events.ProductChanged{ID: "1", Origin: "api-1"}))
	assert.Equal(t, 1, local.Size())
	assert.True(t, mr.Exists(snapshotIDsKey))

	require.NoError(t, handle(ctx, events.ProductChanged{ID: "1", Origin: "api-2"}))
	assert.Zero(t, local.Size())
	assert.False(t, mr.Exists(snapshotIDsKey))
}

func TestInvalidator_WithoutSnapshot(t *testing.T) {
	local := New(time.Minute)
	defer local.Close()
	local.Set(ListKeyPrefix+"x", "list")

	Invalidator{Local: local}.Product(context.Background(), "1")
	assert.Zero(t, local.Size())
}
