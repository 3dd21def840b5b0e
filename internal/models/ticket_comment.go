package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/mailtickets/internal/utils"
)

// TicketComment is a conversation entry following the ticket's opening message.
type TicketComment struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TicketID    uint64    `gorm:"column:ticket_id;index;not null" json:"ticketId"`
	Author      string    `gorm:"column:author;type:varchar(255)" json:"author"`
	AuthorEmail string    `gorm:"column:author_email;type:varchar(255)" json:"authorEmail"`
	UserID      string    `gorm:"column:user_id;type:varchar(100)" json:"userId"`
	Content     string    `gorm:"column:content;type:text" json:"content"`
	Source      string    `gorm:"column:source;type:varchar(20)" json:"source"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp;index" json:"createdAt"`
}

func (TicketComment) TableName() string {
	return "ticket_comments"
}

func (c *TicketComment) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = utils.Now()
	return nil
}
