// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"log"
	"os"
	"time"

	"bazaar/internal/config"
	"bazaar/internal/models"
	"bazaar/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService is the global redis-backed cache instance.
var CacheService *cache.CacheService

// DBConfig holds database connection pool configuration
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

var dbConfig = DBConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: time.Minute * 30,
}

// InitDB initializes the database connection.
// It sets up the connection pool, performs migrations,
// and configures the database with proper settings.
func InitDB() error {
	initPostgres()

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	redisClient := cache.NewRedisClient(redisCfg)
	CacheService = cache.NewCacheService(redisClient, 24*time.Hour)

	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Interest{},
		&models.Deal{},
		&models.Exchange{},
		&models.OTP{},
	)
	if err != nil {
		return err
	}

	return nil
}

func initPostgres() {
	// statement_timeout bounds every gateway call so a stuck query surfaces
	// as a transport error instead of hanging the caller.
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "bazaar") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=disable" +
		" statement_timeout=" + config.GetEnv("DB_STATEMENT_TIMEOUT", "5000")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique violations come back as gorm.ErrDuplicatedKey so callers
		// can tell constraint conflicts from infrastructure failures.
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(dbConfig.ConnMaxIdleTime)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	db.Logger = newLogger

	log.Println("✅ PostgreSQL connected & migrations applied successfully!")
}

// ResetDatabase drops and recreates all marketplace tables.
func ResetDatabase() error {
	err := DB.Migrator().DropTable(
		&models.OTP{},
		&models.Exchange{},
		&models.Deal{},
		&models.Interest{},
		&models.Post{},
		&models.Category{},
		&models.User{},
	)
	if err != nil {
		return err
	}

	return DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Interest{},
		&models.Deal{},
		&models.Exchange{},
		&models.OTP{},
	)
}
