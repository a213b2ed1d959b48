package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	AppEnv   string
	MongoURI string
	MongoDB  string
	RedisURL string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	CacheTTL    time.Duration
	SnapshotTTL time.Duration
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	// En producción se usan directamente las variables del sistema
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		AppEnv:       getEnv("APP_ENV", "development"),
		MongoURI:     getEnv("MONGO_URI", ""),
		MongoDB:      getEnv("MONGO_DB", "studentbuy"),
		RedisURL:     getEnv("REDIS_URL", ""),
		KafkaBrokers: getList("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "catalog.products"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "studentbuy-api"),
		CacheTTL:     getDuration("CACHE_TTL", 2*time.Minute),
		SnapshotTTL:  getDuration("SNAPSHOT_TTL", 5*time.Minute),
		RateLimit:    getInt("RATE_LIMIT", 100),
		RateWindow:   getDuration("RATE_WINDOW", time.Minute),
		CORSOrigins:  getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

// IsProduction indica si APP_ENV es production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️ Invalid duration for %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

// getList lee una lista separada por comas
func getList(key string, fallback []string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
