package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProductsCollection = "products"
	UsersCollection    = "users"
)

// Connect abre la conexión con MongoDB y verifica con un ping
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Println("✅ Connected to MongoDB")
	return client, nil
}

// EnsureIndexes crea los índices que usan los repositorios
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	products := []mongo.IndexModel{
		{
			// mismo índice de texto que el esquema original
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "tags", Value: "text"},
				{Key: "brand", Value: "text"},
			},
		},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "is_deleted", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}
	if _, err := db.Collection(ProductsCollection).Indexes().CreateMany(ctx, products); err != nil {
		return fmt.Errorf("product indexes: %w", err)
	}

	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "referral_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	log.Println("✅ MongoDB indexes ensured")
	return nil
}
