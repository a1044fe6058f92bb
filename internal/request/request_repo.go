package request

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, f ListFilters) ([]Request, error)
	Update(ctx context.Context, r *Request) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) List(ctx context.Context, f ListFilters) ([]Request, error) {
	q := r.db.WithContext(ctx).Model(&Request{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ManagerEmail != "" {
		q = q.Where("manager_email = ?", f.ManagerEmail)
	}
	if f.EmployeeEmail != "" {
		q = q.Where("employee_email = ?", f.EmployeeEmail)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}

	var items []Request
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *repository) Update(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}
