package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

// PriceRange rango de precios preferido por el usuario
type PriceRange struct {
	Min float64 `json:"min" bson:"min"`
	Max float64 `json:"max" bson:"max"`
}

type Preferences struct {
	Categories []string   `json:"categories,omitempty" bson:"categories,omitempty"`
	Brands     []string   `json:"brands,omitempty" bson:"brands,omitempty"`
	PriceRange PriceRange `json:"price_range" bson:"price_range"`
	Language   string     `json:"language" bson:"language"`
}

type Location struct {
	City  string `json:"city,omitempty" bson:"city,omitempty"`
	State string `json:"state,omitempty" bson:"state,omitempty"`
}

// User representa un estudiante registrado. La lista de deseos guarda IDs de producto.
type User struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Name         string      `json:"name" bson:"name"`
	Email        string      `json:"email" bson:"email"`
	Image        string      `json:"image,omitempty" bson:"image,omitempty"`
	PasswordHash string      `json:"-" bson:"password_hash"`
	Role         string      `json:"role" bson:"role"`
	Wishlist     []string    `json:"wishlist" bson:"wishlist"`
	Preferences  Preferences `json:"preferences" bson:"preferences"`
	ReferralCode string      `json:"referral_code" bson:"referral_code"`
	ReferredBy   string      `json:"referred_by,omitempty" bson:"referred_by,omitempty"`
	College      string      `json:"college,omitempty" bson:"college,omitempty"`
	Location     Location    `json:"location" bson:"location"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// UserRegistration datos de alta de un usuario
type UserRegistration struct {
	Name        string       `json:"name" binding:"required,max=50"`
	Email       string       `json:"email" binding:"required,email"`
	Password    string       `json:"password" binding:"required,min=8"`
	Image       string       `json:"image,omitempty"`
	College     string       `json:"college,omitempty"`
	Location    Location     `json:"location"`
	ReferredBy  string       `json:"referral_code,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// DefaultPreferences valores por defecto de las preferencias
func DefaultPreferences() Preferences {
	return Preferences{
		PriceRange: PriceRange{Min: 0, Max: 50000},
		Language:   LanguageEnglish,
	}
}
