package user

import (
	"context"
	"fmt"
	"strings"

	"go-intranet/internal/storage"
	usererrors "go-intranet/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorRole string, req CreateUserRequest) (CreateUserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorRole string, req CreateUserRequest) (CreateUserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("email", req.NewEmail),
		zap.String("role", req.NewRole),
	)

	// The route is already gated by RBAC; this keeps the rule enforced even
	// if the service is reached through another path.
	if actorRole != RoleAdmin {
		return CreateUserResponse{}, usererrors.ErrAdminRequired
	}

	role := strings.TrimSpace(req.NewRole)
	if role == "" {
		return CreateUserResponse{}, usererrors.ErrRoleRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return CreateUserResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		Username: req.NewUsername,
		Email:    req.NewEmail,
		Password: string(hashed),
		Role:     role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if storage.IsUniqueViolation(err) {
			s.logger.Warn("create user duplicate email", zap.String("email", req.NewEmail))
			return CreateUserResponse{}, usererrors.ErrEmailAlreadyExists
		}
		s.logger.Error("create user persist failed", zap.Error(err))
		return CreateUserResponse{}, err
	}

	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return CreateUserResponse{
		UserID:  u.ID.String(),
		Message: fmt.Sprintf("Empleado %s creado exitosamente con el rol: %s.", u.Username, u.Role),
	}, nil
}
