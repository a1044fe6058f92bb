package tools

import (
	"time"

	"github.com/google/uuid"
)

// The frontend sends actions as free text ("Préstamo", "Devolución"); nothing
// normalizes them at write time. PhotoURL uses the "N/A" sentinel instead of
// null because callers pattern-match on it.
const PhotoNotApplicable = "N/A"

// Movement is one append-only ledger row. ToolID is free text, not a foreign
// key into any asset registry.
type Movement struct {
	ID              uuid.UUID `gorm:"type:text;primaryKey"`
	ToolID          string    `gorm:"not null"`
	TechnicianEmail string    `gorm:"not null"`
	TechnicianName  string
	Action          string `gorm:"not null"`
	Condition       string
	PhotoURL        string    `gorm:"not null;default:'N/A'"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (Movement) TableName() string { return "tool_history" }
