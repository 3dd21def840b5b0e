package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/mailtickets/internal/utils"
)

// TicketAttachment holds attachment metadata; the bytes live in object storage.
type TicketAttachment struct {
	ID          string `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	TicketID    uint64 `gorm:"column:ticket_id;index;not null" json:"ticketId"`
	Filename    string `gorm:"column:filename;type:varchar(500)" json:"filename"`
	ContentType string `gorm:"column:content_type;type:varchar(255)" json:"contentType"`
	Size        int    `gorm:"column:size;default:0" json:"size"`

	StorageBucket string `gorm:"column:storage_bucket;type:varchar(255)" json:"-"`
	StorageKey    string `gorm:"column:storage_key;type:varchar(1000)" json:"-"`

	// SHA-256 of the decoded content
	ContentHash string `gorm:"column:content_hash;type:varchar(64);index" json:"contentHash"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp" json:"updatedAt"`
}

func (TicketAttachment) TableName() string {
	return "ticket_attachments"
}

func (a *TicketAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = utils.GenerateNanoIDWithPrefix("file", 12)
	}
	a.CreatedAt = utils.Now()
	a.UpdatedAt = a.CreatedAt
	return nil
}
