package util

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

//nolint:gochecknoglobals // here its ok
var once sync.Once

// LoadEnv reads .env from the working directory once. A missing file is fine.
func LoadEnv() {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	})
}

const (
	defaultAPIBaseURL = "http://localhost:8000/api"
	defaultLoginPath  = "/login/"

	defaultServerAddr      = "localhost:8080"
	defaultWriteTimeout    = 10 * time.Second
	defaultReadTimeout     = 10 * time.Second
	defaultIdleTimeout     = 30 * time.Second
	defaultGracefulTimeout = 5 * time.Second

	defaultStorageBackend   = "file"
	defaultStorageNamespace = "default"

	JWTLeeWay = 5 * time.Second
)

type ClientConfig struct {
	BaseURL   string
	LoginPath string
}

func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   strings.TrimRight(getenvOrDefault("API_BASE_URL", defaultAPIBaseURL), "/"),
		LoginPath: getenvOrDefault("LOGIN_PATH", defaultLoginPath),
	}
}

type StorageConfig struct {
	Backend     string
	FilePath    string
	Namespace   string
	RedisAddr   string
	DatabaseURL string
}

func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		Backend:     getenvOrDefault("STORAGE_BACKEND", defaultStorageBackend),
		FilePath:    getenvOrDefault("STORAGE_FILE", defaultStorageFile()),
		Namespace:   getenvOrDefault("STORAGE_NAMESPACE", defaultStorageNamespace),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

type ServerConfig struct {
	ServerAddr      string
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerAddr:      getenvOrDefault("SERVER_ADDRESS", defaultServerAddr),
		WriteTimeout:    parseDurationOrDefault("WRITE_TIMEOUT", defaultWriteTimeout),
		ReadTimeout:     parseDurationOrDefault("READ_TIMEOUT", defaultReadTimeout),
		IdleTimeout:     parseDurationOrDefault("IDLE_TIMEOUT", defaultIdleTimeout),
		GracefulTimeout: parseDurationOrDefault("GRACEFUL_TIMEOUT", defaultGracefulTimeout),
	}
}

// TokenConfig holds the secret shared with the backend that signs access tokens.
type TokenConfig struct {
	JwtSecretKey []byte
}

func NewTokenConfig() *TokenConfig {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	return &TokenConfig{JwtSecretKey: []byte(secret)}
}

func GetLogLevel() string {
	return getenvOrDefault("LOG_LEVEL", "info")
}

func defaultStorageFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		configDir = "."
	}
	return filepath.Join(configDir, "bookstore", "storage.json")
}

func getenvOrDefault(varName, def string) string {
	if v := os.Getenv(varName); v != "" {
		return v
	}
	return def
}

func parseDurationOrDefault(varName string, def time.Duration) time.Duration {
	if v := os.Getenv(varName); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid duration in %s: %s, using default %s", varName, v, def)
	}
	return def
}
