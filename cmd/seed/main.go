package main

import (
	"context"
	"log"
	"time"

	"studentbuy/internal/config"
	"studentbuy/internal/database"
	"studentbuy/internal/repository"
	"studentbuy/internal/seed"
)

// Carga el catálogo inicial en MongoDB. Se puede ejecutar varias veces.
func main() {
	cfg := config.LoadConfig()
	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGO_URI is required to seed the catalog")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("❌ %v", err)
	}

	repo := repository.NewProductRepository(db.Collection(database.ProductsCollection))
	n, err := repo.Upsert(ctx, seed.Products())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Printf("✅ Seeded %d products into %s.%s", n, cfg.MongoDB, database.ProductsCollection)
}
