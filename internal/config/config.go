package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile   = ".env"
	defaultAddr      = ":8082"
	defaultLogLevel  = "info"
	defaultStaticDir = "./static"
	envProduction    = "production"
)

var ErrMissingSecret = errors.New("JWT_SECRET is not set in environment")

type Config struct {
	Addr       string
	JWTSecret  []byte
	Production bool
	LogLevel   string
	StaticDir  string
}

// Load reads the env file named by START (or .env) into the process
// environment and builds the Config from it. A missing env file is not an
// error: the process environment is used as is.
func Load() (*Config, error) {
	file := os.Getenv("START")
	if file == "" {
		file = defaultEnvFile
	}
	if err := godotenv.Load(file); err != nil {
		log.Printf("env file %q not found, relying on process environment", file)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &Config{
		Addr:       getEnv("HTTP_ADDR", defaultAddr),
		JWTSecret:  []byte(secret),
		Production: strings.EqualFold(os.Getenv("APP_ENV"), envProduction),
		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		StaticDir:  getEnv("STATIC_DIR", defaultStaticDir),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
