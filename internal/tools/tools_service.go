package tools

import (
	"context"
	"strings"
	"time"

	toolserrors "go-intranet/internal/tools/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=tools_service.go -destination=mock/tools_service_mock.go -package=mock
type Service interface {
	RegisterAction(ctx context.Context, in RegisterActionInput) (RegisterActionResponse, error)
	ListHistory(ctx context.Context) ([]MovementResponse, error)
	Status(ctx context.Context) ([]ToolStatus, error)
	Delete(ctx context.Context, id string) (DeleteResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("tools.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tools.service")
	}
	return &service{repo: repo, logger: l}
}

// RegisterAction appends a ledger row. The ledger accepts anything: a second
// loan of an already-loaned tool goes through without complaint.
func (s *service) RegisterAction(ctx context.Context, in RegisterActionInput) (RegisterActionResponse, error) {
	if in.ToolID == "" || in.TechnicianEmail == "" || in.Action == "" {
		return RegisterActionResponse{}, toolserrors.ErrMissingFields
	}

	photoURL := in.PhotoURL
	if photoURL == "" {
		photoURL = PhotoNotApplicable
	}

	m := &Movement{
		ID:              uuid.New(),
		ToolID:          in.ToolID,
		TechnicianEmail: in.TechnicianEmail,
		TechnicianName:  in.TechnicianName,
		Action:          in.Action,
		Condition:       in.Condition,
		PhotoURL:        photoURL,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("movement persist failed",
			zap.String("tool_id", in.ToolID),
			zap.Error(err),
		)
		return RegisterActionResponse{}, err
	}

	s.logger.Info("movement registered",
		zap.String("movement_id", m.ID.String()),
		zap.String("tool_id", m.ToolID),
		zap.String("action", m.Action),
	)

	return RegisterActionResponse{
		HistoryID: m.ID.String(),
		PhotoURL:  photoURL,
		Message:   "Acción registrada correctamente.",
	}, nil
}

func (s *service) ListHistory(ctx context.Context) ([]MovementResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("history list failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

// Status derives the current state of every known tool id from its newest
// ledger row: a loan without a later return means the tool is out.
func (s *service) Status(ctx context.Context) ([]ToolStatus, error) {
	latest, err := s.repo.Latest(ctx)
	if err != nil {
		s.logger.Error("status query failed", zap.Error(err))
		return nil, err
	}

	statuses := make([]ToolStatus, len(latest))
	for i, m := range latest {
		onLoan := isLoan(m.Action)
		st := ToolStatus{
			ToolID:     m.ToolID,
			OnLoan:     onLoan,
			LastAction: m.Action,
			LastSeen:   m.CreatedAt.Format(time.RFC3339),
		}
		if onLoan {
			st.HolderName = m.TechnicianName
			st.HolderMail = m.TechnicianEmail
		}
		statuses[i] = st
	}
	return statuses, nil
}

func (s *service) Delete(ctx context.Context, id string) (DeleteResponse, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("movement delete failed",
			zap.String("movement_id", id),
			zap.Error(err),
		)
		return DeleteResponse{}, err
	}
	if affected == 0 {
		return DeleteResponse{}, toolserrors.ErrMovementNotFound
	}

	s.logger.Info("movement deleted", zap.String("movement_id", id))

	return DeleteResponse{
		DeletedID: id,
		Message:   "Registro eliminado.",
	}, nil
}

// isLoan matches the action tag leniently: stored values arrive as free text
// with varying case and accents ("Préstamo", "PRESTAMO").
func isLoan(action string) bool {
	v := strings.ToUpper(strings.TrimSpace(action))
	v = strings.NewReplacer("É", "E", "Á", "A", "Ó", "O").Replace(v)
	return strings.HasPrefix(v, "PRESTAMO")
}
