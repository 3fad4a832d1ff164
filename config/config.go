package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port           string
	GinMode        string
	DBDriver       string
	DatabaseDSN    string
	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int
	RedisAddr      string
	KafkaBrokers   []string
	KafkaTopic     string
	LogLevel       string
	ServiceName    string
}

func Load() Config {
	return Config{
		Port:           getenv("PORT", "8080"),
		GinMode:        os.Getenv("GIN_MODE"),
		DBDriver:       strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		DatabaseDSN:    getenv("DATABASE_DSN", "hotel.db"),
		CORSOrigin:     getenv("CORS_ORIGIN", "*"),
		RateLimitRPS:   getfloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getint("RATE_LIMIT_BURST", 100),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		KafkaBrokers:   splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getenv("KAFKA_TOPIC", "hotel.reservations"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		ServiceName:    getenv("SERVICE_NAME", "hotel-api"),
	}
}

// Dialector picks the gorm driver matching DB_DRIVER.
func (c Config) Dialector() (gorm.Dialector, error) {
	switch c.DBDriver {
	case DriverMySQL:
		return mysql.Open(c.DatabaseDSN), nil
	case DriverPostgres:
		return postgres.Open(c.DatabaseDSN), nil
	case DriverSQLite, "":
		return sqlite.Open(c.DatabaseDSN), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

func InitDB(cfg Config) (*gorm.DB, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.LogLevel == "debug" || cfg.LogLevel == "trace" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver != DriverSQLite {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getfloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
