package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/mailtickets/config"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/models"
)

type Repositories struct {
	TicketRepository           interfaces.TicketRepository
	TicketCommentRepository    interfaces.TicketCommentRepository
	TicketAttachmentRepository interfaces.TicketAttachmentRepository
	TermRepository             interfaces.TermRepository
}

func InitRepositories(db *gorm.DB, attachmentStorage interfaces.StorageService) *Repositories {
	return &Repositories{
		TicketRepository:           NewTicketRepository(db),
		TicketCommentRepository:    NewTicketCommentRepository(db),
		TicketAttachmentRepository: NewTicketAttachmentRepository(db, attachmentStorage),
		TermRepository:             NewTermRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Ticket{},
		&models.TicketComment{},
		&models.TicketAttachment{},
		&models.TicketTerm{},
	)
}

func MigrateDB(dbConfig *config.DatabaseConfig, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(5)

	err = AutoMigrate(db)

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConn)
	sqlDB.SetMaxOpenConns(dbConfig.MaxConn)
	sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)

	return err
}
