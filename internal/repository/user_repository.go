package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"studentbuy/internal/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(collection *mongo.Collection) *UserRepository {
	return &UserRepository{collection: collection}
}

// Create registra un usuario con la contraseña hasheada y un código de referido propio
func (r *UserRepository) Create(ctx context.Context, reg models.UserRegistration) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID().Hex(),
		Name:         reg.Name,
		Email:        strings.ToLower(strings.TrimSpace(reg.Email)),
		Image:        reg.Image,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Wishlist:     []string{},
		Preferences:  models.DefaultPreferences(),
		ReferralCode: NewReferralCode(),
		College:      reg.College,
		Location:     reg.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if reg.Preferences != nil {
		user.Preferences = *reg.Preferences
	}

	if code := strings.TrimSpace(reg.ReferredBy); code != "" {
		referrer, err := r.FindByReferralCode(ctx, code)
		switch {
		case err == nil:
			user.ReferredBy = referrer.ID
		case errors.Is(err, ErrNotFound):
			log.Printf("⚠️ Unknown referral code %q ignored", code)
		default:
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return user, nil
}

// NewReferralCode genera un código corto en mayúsculas
func NewReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// FindByID obtiene un usuario por ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByReferralCode(ctx context.Context, code string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"referral_code": strings.ToUpper(code)})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AddToWishlist agrega un producto a la lista de deseos (sin duplicados)
func (r *UserRepository) AddToWishlist(ctx context.Context, userID, productID string) error {
	return r.updateWishlist(ctx, userID, bson.M{
		"$addToSet": bson.M{"wishlist": productID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

// RemoveFromWishlist quita un producto de la lista de deseos
func (r *UserRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return r.updateWishlist(ctx, userID, bson.M{
		"$pull": bson.M{"wishlist": productID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

// ClearWishlist vacía la lista de deseos
func (r *UserRepository) ClearWishlist(ctx context.Context, userID string) error {
	return r.updateWishlist(ctx, userID, bson.M{
		"$set": bson.M{"wishlist": []string{}, "updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) updateWishlist(ctx context.Context, userID string, update bson.M) error {
	if err := checkID(userID); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
