package notification

import (
	"context"

	"gorm.io/gorm"
)

// ListFilters narrows the poll query; zero values mean "no filter".
type ListFilters struct {
	TargetRole string
	UnreadOnly bool
}

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, f ListFilters, limit int) ([]Notification, error)
	FindByID(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) List(ctx context.Context, f ListFilters, limit int) ([]Notification, error) {
	q := r.db.WithContext(ctx).Model(&Notification{})
	if f.TargetRole != "" {
		q = q.Where("target_role = ?", f.TargetRole)
	}
	if f.UnreadOnly {
		q = q.Where("read = ?", false)
	}

	var items []Notification
	err := q.Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}
