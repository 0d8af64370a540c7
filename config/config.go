package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port             string
	MongoURI         string
	DBName           string
	StoreBackend     string
	AWSRegion        string
	AWSBucketName    string
	AWSPublicBaseURL string
	JWTSecret        string
	RedisAddr        string
	CatalogCacheTTL  time.Duration
	SignInURL        string
	DefaultHeroImage string
	SlideInterval    time.Duration
	MaxUploadBytes   int64
	AssetsDir        string
	SecureCookies    bool
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = getEnv("PORT", "8080")
	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	DBName = getEnv("DB_NAME", "gloryshop")
	StoreBackend = getEnv("STORE_BACKEND", "mongo")

	AWSRegion = getEnv("AWS_REGION", "us-east-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
	AWSPublicBaseURL = os.Getenv("AWS_PUBLIC_BASE_URL")

	JWTSecret = os.Getenv("JWT_SECRET")

	RedisAddr = os.Getenv("REDIS_ADDR")
	CatalogCacheTTL = getDuration("CATALOG_CACHE_TTL", time.Minute)

	SignInURL = getEnv("SIGN_IN_URL", "/login.html")
	DefaultHeroImage = getEnv("DEFAULT_HERO_IMAGE", "assets/logo.png")
	SlideInterval = getDuration("SLIDE_INTERVAL", 5*time.Second)
	MaxUploadBytes = getInt64("MAX_UPLOAD_BYTES", 64<<20)
	AssetsDir = getEnv("ASSETS_DIR", "assets")
	SecureCookies = os.Getenv("SECURE_COOKIES") == "true"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
