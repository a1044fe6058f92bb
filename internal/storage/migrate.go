package storage

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration is one ordered, idempotent schema step. Applied versions are
// recorded in schema_migrations; a step never runs twice. This replaces the
// previous deployment's best-effort "ALTER and swallow duplicate-column
// errors" startup with an explicit version check.
type Migration struct {
	Version int
	Name    string
	Run     func(tx *gorm.DB) error
}

type schemaMigration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string { return "schema_migrations" }

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		Run: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE TABLE users (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL,
				otp TEXT,
				role TEXT NOT NULL DEFAULT 'employee',
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			)`).Error
		},
	},
	{
		Version: 2,
		Name:    "create_solicitudes",
		Run: func(tx *gorm.DB) error {
			if err := tx.Exec(`CREATE TABLE solicitudes (
				id TEXT PRIMARY KEY,
				type TEXT NOT NULL,
				employee_email TEXT NOT NULL,
				employee_name TEXT NOT NULL,
				manager_email TEXT NOT NULL,
				payload TEXT NOT NULL DEFAULT '{}',
				status TEXT NOT NULL DEFAULT 'PENDIENTE',
				manager_comment TEXT,
				decided_at DATETIME,
				created_at DATETIME NOT NULL
			)`).Error; err != nil {
				return err
			}
			return tx.Exec(`CREATE INDEX idx_solicitudes_status_created
				ON solicitudes(status, created_at)`).Error
		},
	},
	{
		Version: 3,
		Name:    "create_notifications",
		Run: func(tx *gorm.DB) error {
			if err := tx.Exec(`CREATE TABLE notifications (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				message TEXT NOT NULL,
				category TEXT NOT NULL,
				target_role TEXT,
				target_user_id TEXT,
				ref_type TEXT NOT NULL,
				ref_id TEXT NOT NULL,
				read NUMERIC NOT NULL DEFAULT false,
				created_at DATETIME NOT NULL
			)`).Error; err != nil {
				return err
			}
			return tx.Exec(`CREATE INDEX idx_notifications_target_created
				ON notifications(target_role, read, created_at)`).Error
		},
	},
	{
		Version: 4,
		Name:    "create_tool_history",
		Run: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE TABLE tool_history (
				id TEXT PRIMARY KEY,
				tool_id TEXT NOT NULL,
				technician_email TEXT NOT NULL,
				technician_name TEXT,
				action TEXT NOT NULL,
				condition TEXT,
				photo_url TEXT NOT NULL DEFAULT 'N/A',
				created_at DATETIME NOT NULL
			)`).Error
		},
	},
}

// Migrate applies every pending migration in order, each inside its own
// transaction together with its schema_migrations row.
func Migrate(db *gorm.DB) error {
	logger := zap.L().Named("storage.migrate")

	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return err
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).
			Where("version = ?", m.Version).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			logger.Error("migration failed",
				zap.Int("version", m.Version),
				zap.String("name", m.Name),
				zap.Error(err),
			)
			return err
		}
		logger.Info("migration applied",
			zap.Int("version", m.Version),
			zap.String("name", m.Name),
		)
	}

	return nil
}
