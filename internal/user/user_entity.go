package user

import (
	"time"

	"github.com/google/uuid"
)

// Role values are an open string set; these are the ones the intranet ships
// with.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleRRHH     = "rrhh"
	RoleAdmin    = "admin"
	RoleTecnico  = "tecnico"
)

type User struct {
	ID       uuid.UUID `gorm:"type:text;primaryKey"`
	Username string    `gorm:"not null"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	// OTP holds the pending one-time code between login and verification.
	// Nil means no pending code. A pending code has no expiry; it stays valid
	// until consumed or overwritten by the next login.
	OTP  *string
	Role string `gorm:"not null;default:'employee'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
