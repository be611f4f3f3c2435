package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DraftStore: redis, mysql atau memory.
	DraftStore    string
	DraftDebounce time.Duration
	DraftTTL      time.Duration

	// BackendURL kosong berarti formulir disimpan langsung oleh proses ini.
	BackendURL string

	LogLevel  string
	LogFormat string
}

var (
	cfg  *Config
	once sync.Once
)

func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = FromEnv()
	})
	return cfg
}

// FromEnv membaca konfigurasi dari environment tanpa menyentuh singleton.
func FromEnv() *Config {
	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		DraftStore:    getEnv("DRAFT_STORE", "memory"),
		DraftDebounce: time.Duration(getEnvInt("DRAFT_DEBOUNCE_MS", 800)) * time.Millisecond,
		DraftTTL:      time.Duration(getEnvInt("DRAFT_TTL_HOURS", 720)) * time.Hour,

		BackendURL: os.Getenv("BACKEND_URL"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q bukan angka, memakai %d", key, v, fallback)
		return fallback
	}
	return n
}
