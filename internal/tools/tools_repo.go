package tools

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tools_repo.go -destination=mock/tools_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, m *Movement) error
	FindAll(ctx context.Context) ([]Movement, error)
	Delete(ctx context.Context, id string) (int64, error)
	Latest(ctx context.Context) ([]Movement, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Movement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindAll is the full ledger, newest first. No pagination; the history table
// stays small in practice.
func (r *repository) FindAll(ctx context.Context) ([]Movement, error) {
	var items []Movement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Delete returns the affected row count so the caller can map zero to 404.
func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Movement{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// Latest returns the newest movement per tool id. Ties on created_at are
// broken by id so a tool never yields two rows.
func (r *repository) Latest(ctx context.Context) ([]Movement, error) {
	var items []Movement
	err := r.db.WithContext(ctx).
		Raw(`SELECT h.* FROM tool_history h
		     WHERE h.id = (SELECT h2.id FROM tool_history h2
		                   WHERE h2.tool_id = h.tool_id
		                   ORDER BY h2.created_at DESC, h2.id DESC LIMIT 1)
		     ORDER BY h.tool_id`).
		Scan(&items).Error
	return items, err
}
