package config

import (
	"fmt"
	"gotierlist/pkg/regions"
	tiervalues "gotierlist/pkg/riotvalues/tier"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Op.gg API configuration.
type OpggConfiguration struct {
	BaseURL       string
	DefaultRegion string
	DefaultTier   string
	CacheSize     int
	Timeout       time.Duration
}

// Data Dragon configuration, source of champion names and icons.
type DDragonConfiguration struct {
	BaseURL  string
	Language string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Postgres configuration, used only as the backup store for the asset cache.
type DatabaseConfiguration struct {
	URL            string
	Database       string
	MigrationsPath string
	Enabled        bool
}

// S3 compatible bucket used to ship the job logs.
type BucketConfiguration struct {
	Region       string
	AccessKey    string
	AccessSecret string
	Endpoint     string
	LogBucket    string
	Enabled      bool
}

// Ports exposed by the api.
type ApiConfiguration struct {
	Port     string
	GRPCPort string
}

// Config is the full application configuration.
type Config struct {
	Environment string
	Opgg        OpggConfiguration
	DDragon     DDragonConfiguration
	Redis       RedisConfiguration
	Database    DatabaseConfiguration
	Bucket      BucketConfiguration
	Api         ApiConfiguration
}

// Load the .env (when not running on docker) and read the configuration from the environment.
func Load() (*Config, error) {
	environment := os.Getenv("ENVIRONMENT")
	if environment != "docker" {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded, using the process environment: %v", err)
		}
	}

	cacheSize, err := getIntOrDefault("OPGG_CACHE_SIZE", 20)
	if err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		return nil, fmt.Errorf("OPGG_CACHE_SIZE must be positive, got %d", cacheSize)
	}

	timeout, err := getDurationOrDefault("OPGG_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	region, err := defaultRegion(getEnvOrDefault("OPGG_REGION", string(regions.Global)))
	if err != nil {
		return nil, err
	}

	tier, err := tiervalues.Normalize(getEnvOrDefault("OPGG_TIER", "emerald_plus"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPGG_TIER: %w", err)
	}

	cfg := &Config{
		Environment: environment,
		Opgg: OpggConfiguration{
			BaseURL:       getEnvOrDefault("OPGG_BASE_URL", "https://lol-api-champion.op.gg"),
			DefaultRegion: region,
			DefaultTier:   tier,
			CacheSize:     cacheSize,
			Timeout:       timeout,
		},
		DDragon: DDragonConfiguration{
			BaseURL:  getEnvOrDefault("DDRAGON_URL", "https://ddragon.leagueoflegends.com/"),
			Language: getEnvOrDefault("DDRAGON_LANGUAGE", "en_US"),
		},
		Redis: RedisConfiguration{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Database: DatabaseConfiguration{
			URL:            os.Getenv("POSTGRES_URL"),
			Database:       getEnvOrDefault("POSTGRES_DB", "gotierlist"),
			MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
		},
		Bucket: BucketConfiguration{
			Region:       os.Getenv("BUCKET_REGION"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			LogBucket:    os.Getenv("LOG_BUCKET"),
		},
		Api: ApiConfiguration{
			Port:     getEnvOrDefault("API_PORT", "8080"),
			GRPCPort: getEnvOrDefault("GRPC_PORT", "50051"),
		},
	}

	cfg.Database.Enabled = cfg.Database.URL != ""
	cfg.Bucket.Enabled = cfg.Bucket.LogBucket != ""

	return cfg, nil
}

// The default region in the same form the api filters use.
func defaultRegion(value string) (string, error) {
	region := regions.Normalize(value)
	if !regions.IsValid(region) {
		return "", fmt.Errorf("invalid OPGG_REGION %q", value)
	}
	return string(region), nil
}

// Return the env value or the fallback when it's empty.
func getEnvOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntOrDefault(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return parsed, nil
}
