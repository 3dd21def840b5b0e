package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/mailtickets/internal/utils"
)

// TicketTerm is one value of the status or priority taxonomy.
type TicketTerm struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Taxonomy  string    `gorm:"column:taxonomy;type:varchar(50);not null;uniqueIndex:uq_ticket_term" json:"taxonomy"`
	Name      string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_ticket_term" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp" json:"createdAt"`
}

func (TicketTerm) TableName() string {
	return "ticket_terms"
}

func (t *TicketTerm) BeforeCreate(tx *gorm.DB) error {
	t.CreatedAt = utils.Now()
	return nil
}
