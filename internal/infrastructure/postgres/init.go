package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nyasamarket/escrow-service/internal/config"
)

func MustInitDB(cfg *config.EscrowConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.EscrowDB.Dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	return db
}
