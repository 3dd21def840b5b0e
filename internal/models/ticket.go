package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/mailtickets/internal/enum"
	"github.com/customeros/mailtickets/internal/utils"
)

const TicketSubjectMaxLength = 200

type Ticket struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Subject       string    `gorm:"column:subject;type:varchar(255);not null" json:"subject"`
	Content       string    `gorm:"column:content;type:text" json:"content"`
	CustomerEmail string    `gorm:"column:customer_email;type:varchar(255);index" json:"customerEmail"`
	CustomerName  string    `gorm:"column:customer_name;type:varchar(255)" json:"customerName"`
	Status        string    `gorm:"column:status;type:varchar(100);index;not null" json:"status"`
	Priority      string    `gorm:"column:priority;type:varchar(100)" json:"priority"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamp;index" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at;type:timestamp" json:"updatedAt"`
}

func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	t.Subject = utils.Truncate(t.Subject, TicketSubjectMaxLength)
	if t.Status == "" {
		t.Status = enum.TicketStatusOpen.String()
	}
	if t.Priority == "" {
		t.Priority = enum.TicketPriorityMedium.String()
	}
	t.CreatedAt = utils.Now()
	t.UpdatedAt = t.CreatedAt
	return nil
}
