package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studentbuy/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrInvalidID = errors.New("invalid id")
)

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	return nil
}

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// Create crea un nuevo producto
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	product.ID = primitive.NewObjectID().Hex()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.IsDeleted = false

	_, err := r.collection.InsertOne(ctx, product)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.Product
	filter := bson.M{
		"_id":        id,
		"is_deleted": false,
	}

	err := r.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// creationOrder ordena por fecha de alta. Los IDs del seed ("1".."8") y los
// ObjectID hex no comparten orden como texto, así que _id solo desempata.
var creationOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// FetchProducts devuelve todos los productos vigentes en orden de alta.
// Implementa catalog.Source: el filtrado y el orden del listado los hace el motor.
func (r *ProductRepository) FetchProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(creationOrder)

	cursor, err := r.collection.Find(ctx, bson.M{"is_deleted": false}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	return products, nil
}

// Update actualiza un producto
func (r *ProductRepository) Update(ctx context.Context, id string, update bson.M) error {
	if err := checkID(id); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Agregar updated_at automáticamente
	update["updated_at"] = time.Now().UTC()

	filter := bson.M{
		"_id":        id,
		"is_deleted": false,
	}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": update},
	)

	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// SoftDelete marca un producto como eliminado
func (r *ProductRepository) SoftDelete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":        id,
		"is_deleted": false,
	}

	update := bson.M{
		"$set": bson.M{
			"is_deleted": true,
			"updated_at": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Upsert reemplaza o inserta los productos por ID (carga del catálogo inicial)
func (r *ProductRepository) Upsert(ctx context.Context, products []models.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(products))
	for _, p := range products {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetReplacement(p).
			SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("upsert products: %w", err)
	}

	return result.UpsertedCount + result.ModifiedCount, nil
}
