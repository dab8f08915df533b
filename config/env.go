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
	AppEnv string
	Port   string

	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	MigrationsDir string
	AtomicWrites  bool

	RedisURL      string
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret string

	UploadDir          string
	MediaDriver        string
	CloudinaryURL      string
	CloudinaryName     string
	CloudinaryKey      string
	CloudinarySecret   string
	CloudinaryFolder   string
	MaxUploadSize      int64
	MaxMultipartMemory int64

	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	SMTPFrom    string
	AdminEmails []string
	FrontendURL string
	OriginURL   string
	CORSOrigins []string

	LogLevel    string
	LogEncoding string
}

var AppConfig *Config

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("APP_PORT", getEnv("PORT", "8082")),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "vitalimes"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getEnvInt("DB_MAX_CONNS", 25)),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "database/migration"),
		AtomicWrites:  getEnvBool("ATOMIC_WRITES", true),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		JWTSecret: os.Getenv("JWT_SECRET"),

		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		MediaDriver:        getEnv("MEDIA_DRIVER", "local"),
		CloudinaryURL:      os.Getenv("CLOUDINARY_URL"),
		CloudinaryName:     os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:      os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret:   os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:   getEnv("CLOUDINARY_FOLDER", "products"),
		MaxUploadSize:      getEnvInt64("MAX_UPLOAD_SIZE", 0),
		MaxMultipartMemory: getEnvInt64("MAX_MULTIPART_MEMORY", 32<<20),

		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    getEnvInt("SMTP_PORT", 587),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		SMTPFrom:    os.Getenv("SMTP_FROM"),
		AdminEmails: getEnvList("ADMIN_EMAILS"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		OriginURL:   os.Getenv("ORIGIN_URL"),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: os.Getenv("LOG_ENCODING"),
	}

	AppConfig.CORSOrigins = getEnvList("CORS_ORIGINS")
	if len(AppConfig.CORSOrigins) == 0 {
		AppConfig.CORSOrigins = []string{AppConfig.FrontendURL}
		if AppConfig.OriginURL != "" {
			AppConfig.CORSOrigins = append(AppConfig.CORSOrigins, AppConfig.OriginURL)
		}
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, fallback int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if i, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return i
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func getEnvList(key string) []string {
	out := []string{}
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
