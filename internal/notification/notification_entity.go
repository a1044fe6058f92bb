package notification

import (
	"time"

	"github.com/google/uuid"
)

// Categories and reference types of the fan-out records.
const (
	CategorySolicitud = "SOLICITUD"

	RefTypeSolicitud = "solicitud"
)

// Notification is an ephemeral fan-out row. Targeted at either a role or a
// single user; clients poll and mark read, nothing deletes them.
type Notification struct {
	ID           uuid.UUID `gorm:"type:text;primaryKey"`
	Title        string    `gorm:"not null"`
	Message      string    `gorm:"not null"`
	Category     string    `gorm:"not null"`
	TargetRole   *string
	TargetUserID *string
	RefType      string `gorm:"not null"`
	RefID        string `gorm:"not null"`
	Read         bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (Notification) TableName() string { return "notifications" }
