package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"studentbuy/internal/catalog"
	"studentbuy/internal/models"
)

const (
	snapshotIDsKey        = "catalog:product_ids"
	snapshotProductKey    = "catalog:product:"
	snapshotGenerationKey = "catalog:generation"
)

var (
	errSnapshotMiss  = errors.New("snapshot miss")
	errSnapshotStale = errors.New("snapshot invalidated while loading")
)

// Snapshot guarda en Redis una copia del catálogo completo delante de otra Source.
// El índice de IDs conserva el orden de la fuente; cada producto vive en su propia clave.
// Cada Invalidate sube la generación y un repoblado iniciado antes no escribe.
type Snapshot struct {
	client redis.UniversalClient
	source catalog.Source
	ttl    time.Duration

	wg sync.WaitGroup
}

func NewSnapshot(client redis.UniversalClient, source catalog.Source, ttl time.Duration) *Snapshot {
	return &Snapshot{client: client, source: source, ttl: ttl}
}

// FetchProducts lee de Redis y, si falta algo, cae a la fuente y repuebla en segundo plano
func (s *Snapshot) FetchProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.read(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, errSnapshotMiss) {
		log.Printf("⚠️ Snapshot read failed (%v), falling back to source", err)
	}

	// La generación se lee antes que la fuente
	generation, genErr := parseGeneration(s.client.Get(ctx, snapshotGenerationKey))

	products, err = s.source.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		log.Printf("⚠️ Skipping snapshot populate: %v", genErr)
		return products, nil
	}

	snapshot := slices.Clone(products)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		err := s.store(storeCtx, generation, snapshot)
		switch {
		case errors.Is(err, errSnapshotStale), errors.Is(err, redis.TxFailedErr):
			log.Printf("⚠️ Snapshot populate discarded: catalog changed during load")
		case err != nil:
			log.Printf("⚠️ Failed to populate snapshot: %v", err)
		}
	}()

	return products, nil
}

// Invalidate descarta el índice; la siguiente lectura vuelve a la fuente
func (s *Snapshot) Invalidate(ctx context.Context) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, snapshotGenerationKey)
		pipe.Del(ctx, snapshotIDsKey)
		return nil
	})
	return err
}

// Wait espera a que terminen los repoblados pendientes
func (s *Snapshot) Wait() {
	s.wg.Wait()
}

func (s *Snapshot) read(ctx context.Context) ([]models.Product, error) {
	ids, err := s.client.LRange(ctx, snapshotIDsKey, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errSnapshotMiss
		}
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errSnapshotMiss
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = snapshotProductKey + id
	}

	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget products: %w", err)
	}

	products := make([]models.Product, 0, len(results))
	for i, res := range results {
		raw, ok := res.(string)
		if !ok {
			// expirado o desalojado: el snapshot ya no está completo
			return nil, fmt.Errorf("%w: product %s", errSnapshotMiss, ids[i])
		}
		var product models.Product
		if err := json.Unmarshal([]byte(raw), &product); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", ids[i], err)
		}
		products = append(products, product)
	}

	return products, nil
}

// store escribe el snapshot solo si la generación sigue siendo la leída antes de la fuente
func (s *Snapshot) store(ctx context.Context, generation int64, products []models.Product) error {
	encoded := make([][]byte, len(products))
	ids := make([]any, len(products))
	for i, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode product %s: %w", p.ID, err)
		}
		encoded[i] = data
		ids[i] = p.ID
	}

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := parseGeneration(tx.Get(ctx, snapshotGenerationKey))
		if err != nil {
			return err
		}
		if current != generation {
			return errSnapshotStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, snapshotIDsKey)
			for i, p := range products {
				pipe.Set(ctx, snapshotProductKey+p.ID, encoded[i], s.ttl)
			}
			if len(ids) > 0 {
				pipe.RPush(ctx, snapshotIDsKey, ids...)
				pipe.Expire(ctx, snapshotIDsKey, s.ttl)
			}
			return nil
		})
		return err
	}, snapshotGenerationKey)
}

// parseGeneration trata la clave ausente como generación 0
func parseGeneration(cmd *redis.StringCmd) (int64, error) {
	n, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
