package config

import (
	"fmt"
	"os"

	"hotelbooking/models"
	"hotelbooking/services/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func databaseDSN(env string) (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}

	var prefix string
	switch env {
	case "dev":
		prefix = "DEV_"
	case "qc":
		prefix = "QC_"
	case "prod":
		prefix = "PROD_"
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}

	user := os.Getenv(prefix + "DB_USER")
	password := os.Getenv(prefix + "DB_PASSWORD")
	host := os.Getenv(prefix + "DB_HOST")
	port := os.Getenv(prefix + "DB_PORT")
	name := os.Getenv(prefix + "DB_NAME")
	sslmode := getEnv(prefix+"DB_SSLMODE", "require")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, password, name, port, sslmode), nil
}

// ConnectDB mở kết nối Postgres và migrate schema.
// Foreign keys are not created: bookings must survive the deletion of their
// user until the orphan sweep removes them.
func ConnectDB(cfg *Config, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("Successfully connected to db (%s)", cfg.Env)
	return db, nil
}
