package platform

import (
	"log"
	"strings"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

// NewDBConnection initializes and returns a GORM database connection.
// A postgres:// DSN selects Postgres; anything else is treated as a sqlite
// file path, which is the default for the single-user dashboard.
func NewDBConnection(cfg Config) *gorm.DB {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "vidra.db"
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Series{}, &models.Video{}, &models.SocialAccount{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	log.Println("Database connected successfully")
	return db
}

// NewRedisClient initializes and returns a Redis client.
func NewRedisClient(cfg Config) *redis.Client {
	addr := cfg.RedisURL
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	log.Println("Redis client initialized")
	return rdb
}
