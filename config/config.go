package config

import (
	"fmt"
	"os"
	"time"

	"eventspot/internal/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func LoadCloudinaryConfig() (*CloudinaryConfig, error) {
	cfg := &CloudinaryConfig{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		Folder:    getEnv("CLOUDINARY_FOLDER", "event_banners"),
	}
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("missing cloudinary credentials")
	}
	return cfg, nil
}

func InitCloudinary(cfg *CloudinaryConfig) (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
}

type RedisConfig struct {
	Addr     string
	Password string
	ListTTL  time.Duration
}

func LoadRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: os.Getenv("REDIS_PASSWORD"),
		ListTTL:  getEnvAsDuration("REDIS_LIST_TTL", "60s"),
	}
}

// InitRedis returns nil when no address is configured. The listing cache is
// optional and the query service degrades to the repository without it.
func InitRedis(cfg *RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
}

type ReconcilerConfig struct {
	Interval    time.Duration
	GracePeriod time.Duration
}

func LoadReconcilerConfig() *ReconcilerConfig {
	return &ReconcilerConfig{
		Interval:    getEnvAsDuration("RECONCILER_INTERVAL", "10m"),
		GracePeriod: getEnvAsDuration("RECONCILER_GRACE_PERIOD", "1h"),
	}
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Event{}, &models.UploadRecord{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	val := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(val)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
