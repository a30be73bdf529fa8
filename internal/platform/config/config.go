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
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	MigrateOnStart bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	WeatherAPIURL   string
	WeatherTimeout  time.Duration
	WeatherCacheTTL time.Duration

	AdminPathPrefix string

	LogLevel  string
	LogFormat string
}

var AppConfig *Config

// Load reads .env (if present) and the process environment. The result is
// also stored in AppConfig.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:         getEnv("API_PORT", "8080"),
		JWTKey:          []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:          time.Duration(getEnvAsInt("JWT_EXPIRATION_MINUTES", 60)) * time.Minute,
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "user"),
		DBPassword:      getEnv("DB_PASSWORD", "password"),
		DBName:          getEnv("DB_NAME", "todo_expert_db"),
		DBSslMode:       getEnv("DB_SSLMODE", "disable"),
		MigrateOnStart:  getEnvAsBool("MIGRATE_ON_START", true),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		WeatherAPIURL:   getEnv("WEATHER_API_URL", "https://f-api.github.io/f-api/weather.json"),
		WeatherTimeout:  time.Duration(getEnvAsInt("WEATHER_TIMEOUT_SECONDS", 5)) * time.Second,
		WeatherCacheTTL: time.Duration(getEnvAsInt("WEATHER_CACHE_TTL_MINUTES", 60)) * time.Minute,
		AdminPathPrefix: getEnv("ADMIN_PATH_PREFIX", "/admin/"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	AppConfig = cfg
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
