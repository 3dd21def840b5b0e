package database

import (
	"gorm.io/gorm"

	"github.com/customeros/mailtickets/config"
)

func InitTicketingDatabase(dbConfig *config.DatabaseConfig) (*gorm.DB, error) {
	return NewConnection(dbConfig)
}
