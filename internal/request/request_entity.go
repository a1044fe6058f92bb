package request

import (
	"time"

	"github.com/google/uuid"
)

// Request types as the deployed frontend sends them.
const (
	TypeVacaciones  = "VACACIONES"
	TypeCertificado = "CERTIFICADO"
	TypeNomina      = "NOMINA"
	TypePrestamo    = "PRESTAMO"
	TypeIncapacidad = "INCAPACIDAD"
)

// Lifecycle statuses. A request starts PENDIENTE and a manager decision moves
// it to one of the terminal values.
const (
	StatusPendiente = "PENDIENTE"
	StatusAprobada  = "APROBADA"
	StatusRechazada = "RECHAZADA"
)

// Request is an HR work item. Payload is the write-once submission blob, kept
// apart from the decision columns so the audit trail never mutates what the
// employee submitted.
type Request struct {
	ID             uuid.UUID `gorm:"type:text;primaryKey"`
	Type           string    `gorm:"not null"`
	EmployeeEmail  string    `gorm:"not null"`
	EmployeeName   string
	ManagerEmail   string `gorm:"not null"`
	Payload        string `gorm:"not null;default:'{}'"`
	Status         string `gorm:"not null;default:'PENDIENTE'"`
	ManagerComment *string
	DecidedAt      *time.Time
	CreatedAt      time.Time
}

func (Request) TableName() string { return "solicitudes" }

// ValidDecision reports whether s is one of the two terminal statuses.
func ValidDecision(s string) bool {
	return s == StatusAprobada || s == StatusRechazada
}
