package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
	"gopkg.in/yaml.v3"         // For optional config file defaults
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	DBDriver    string        // mysql, postgres or sqlite
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name, file path for sqlite
	DBDebug     bool          // Log SQL statements
	JWTSecret   string        // JWT secret key
	TokenTTL    time.Duration // Lifetime of issued tokens
	RedisAddr   string        // Redis server address, empty disables caching
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheTTL    time.Duration // TTL of cached reference data
	IsProd      bool          // Is production environment
	LogLevel    string        // logrus level name
	CORSOrigins []string      // Allowed CORS origins
	PublicURL   string        // Base URL used for short links
	Storage     string        // Image store backend, local or s3
	MediaDir    string        // Local image directory
	MediaURL    string        // URL prefix of served images
	S3Bucket    string        // S3 bucket name
	S3Region    string        // S3 region
	S3Endpoint  string        // Custom S3 endpoint, optional
	S3AccessKey string        // Static S3 access key, optional
	S3SecretKey string        // Static S3 secret key, optional
	S3PublicURL string        // Public URL prefix of the bucket
}

// defaults lists every setting that may come from the YAML file
var defaults = map[string]string{
	"APP_PORT":      "8000",
	"DB_DRIVER":     "mysql",
	"DB_HOST":       "localhost",
	"DB_PORT":       "3306",
	"TOKEN_TTL":     "24h",
	"CACHE_TTL":     "5m",
	"LOG_LEVEL":     "info",
	"CORS_ORIGINS":  "*",
	"PUBLIC_URL":    "http://localhost:8000",
	"STORAGE":       "local",
	"MEDIA_DIR":     "media",
	"MEDIA_URL":     "/media/",
	"S3_REGION":     "us-east-1",
	"JWT_SECRET":    "",
	"DB_USER":       "",
	"DB_PASSWORD":   "",
	"DB_NAME":       "foodgram",
	"DB_DEBUG":      "false",
	"REDIS_ADDR":    "",
	"REDIS_PASS":    "",
	"REDIS_DB":      "0",
	"IS_PROD":       "false",
	"S3_BUCKET":     "",
	"S3_ENDPOINT":   "",
	"S3_ACCESS_KEY": "",
	"S3_SECRET_KEY": "",
	"S3_PUBLIC_URL": "",
}

// LoadConfig loads configuration from environment variables. Unset variables
// fall back to CONFIG_FILE (config.yaml by default) and then to built-in defaults.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	file, err := readFile(path)
	if err != nil {
		return nil, err
	}
	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v // Environment wins
		}
		if v, ok := file[key]; ok {
			return v // Then the config file
		}
		return defaults[key]
	}

	tokenTTL, err := time.ParseDuration(get("TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	cacheTTL, err := time.ParseDuration(get("CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}
	redisDB, _ := strconv.Atoi(get("REDIS_DB"))

	cfg := &Config{
		AppPort:     get("APP_PORT"),           // Application port
		DBDriver:    get("DB_DRIVER"),          // Database driver
		DBUser:      get("DB_USER"),            // Database user
		DBPassword:  get("DB_PASSWORD"),        // Database password
		DBHost:      get("DB_HOST"),            // Database host
		DBPort:      get("DB_PORT"),            // Database port
		DBName:      get("DB_NAME"),            // Database name
		DBDebug:     get("DB_DEBUG") == "true", // SQL logging
		JWTSecret:   get("JWT_SECRET"),         // JWT secret key
		TokenTTL:    tokenTTL,                  // Token lifetime
		RedisAddr:   get("REDIS_ADDR"),         // Redis server address
		RedisPass:   get("REDIS_PASS"),         // Redis password
		RedisDB:     redisDB,                   // Redis database number
		CacheTTL:    cacheTTL,                  // Cache lifetime
		IsProd:      get("IS_PROD") == "true",  // Is production environment
		LogLevel:    get("LOG_LEVEL"),          // Log level
		CORSOrigins: splitList(get("CORS_ORIGINS")),
		PublicURL:   strings.TrimRight(get("PUBLIC_URL"), "/"),
		Storage:     get("STORAGE"),
		MediaDir:    get("MEDIA_DIR"),
		MediaURL:    get("MEDIA_URL"),
		S3Bucket:    get("S3_BUCKET"),
		S3Region:    get("S3_REGION"),
		S3Endpoint:  get("S3_ENDPOINT"),
		S3AccessKey: get("S3_ACCESS_KEY"),
		S3SecretKey: get("S3_SECRET_KEY"),
		S3PublicURL: get("S3_PUBLIC_URL"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	case "sqlite":
		return c.DBName
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true"
}

// readFile loads flat KEY: value pairs from a YAML file; a missing file is not an error
func readFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
