package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studentbuy/internal/cache"
	"studentbuy/internal/catalog"
	"studentbuy/internal/config"
	"studentbuy/internal/database"
	"studentbuy/internal/events"
	"studentbuy/internal/handlers"
	"studentbuy/internal/middleware"
	"studentbuy/internal/repository"
	"studentbuy/internal/routes"
	"studentbuy/internal/seed"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	origin := instanceID()
	localCache := cache.New(cfg.CacheTTL)
	defer localCache.Close()

	checks := map[string]handlers.Check{}
	var source catalog.Source = seed.NewStatic()
	var productRepo *repository.ProductRepository
	var userRepo *repository.UserRepository

	if cfg.MongoURI != "" {
		client, err := database.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer client.Disconnect(context.Background())

		db := client.Database(cfg.MongoDB)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			log.Println("⚠️ Could not ensure indexes:", err)
		}

		productRepo = repository.NewProductRepository(db.Collection(database.ProductsCollection))
		userRepo = repository.NewUserRepository(db.Collection(database.UsersCollection))
		source = productRepo
		checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	} else {
		log.Println("⚠️ MONGO_URI not set, serving the seed catalog (admin and user routes disabled)")
	}

	var snapshot *cache.Snapshot
	var limiters []gin.HandlerFunc
	if cfg.RedisURL != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer rdb.Close()

		snapshot = cache.NewSnapshot(rdb, source, cfg.SnapshotTTL)
		defer snapshot.Wait()
		source = snapshot
		limiters = append(limiters, middleware.RateLimiter(rdb, cfg.RateLimit, cfg.RateWindow))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Println("⚠️ REDIS_URL not set, snapshot cache and rate limiting disabled")
	}

	invalidator := cache.Invalidator{Local: localCache, Snapshot: snapshot}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)

		// cada instancia usa su propio grupo para recibir todos los cambios
		reader := events.NewReader(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID+"-"+origin)
		go func() {
			defer reader.Close()
			events.Consume(ctx, reader, invalidator.OnProductChanged(origin))
		}()
		log.Println("✅ Listening for catalog events on", cfg.KafkaTopic)
	}
	defer publisher.Close()

	h := routes.Handlers{
		Catalog: handlers.NewCatalogHandler(source, localCache),
		Health:  handlers.Health(checks),
	}
	if productRepo != nil {
		h.Products = handlers.NewProductHandler(productRepo, invalidator, publisher, origin)
		h.Users = handlers.NewUserHandler(userRepo, source)
	}

	router := gin.Default()
	router.Use(middleware.CORS(cfg.CORSOrigins))
	routes.RegisterRoutes(router, h, limiters...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("🚀 Server running on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("⚠️ Forced shutdown:", err)
	}
}

// instanceID identifica esta instancia en los eventos que publica
func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "api"
	}
	return host + "-" + uuid.NewString()[:8]
}
