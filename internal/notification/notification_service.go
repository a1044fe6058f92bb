package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	notificationerrors "go-intranet/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Clients poll every 30 seconds; only this many newest rows are ever returned.
const listCap = 20

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	NotifyRole(ctx context.Context, targetRole, title, message, refType, refID string) error
	List(ctx context.Context, f ListFilters) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	events EventPublisher
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, events EventPublisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	if events == nil {
		events = NewNoopEventPublisher()
	}
	return &service{
		repo:   repo,
		events: events,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// NotifyRole inserts a fan-out row for everyone holding the role and mirrors
// it to the event stream. The stream publish never fails the insert.
func (s *service) NotifyRole(ctx context.Context, targetRole, title, message, refType, refID string) error {
	role := targetRole
	n := &Notification{
		ID:         uuid.New(),
		Title:      title,
		Message:    message,
		Category:   CategorySolicitud,
		TargetRole: &role,
		RefType:    refType,
		RefID:      refID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("notification persist failed",
			zap.String("target_role", targetRole),
			zap.Error(err),
		)
		return err
	}

	if err := s.events.PublishCreated(ctx, *n); err != nil {
		s.logger.Warn("notification event publish failed",
			zap.String("notification_id", n.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("target_role", targetRole),
		zap.String("ref_id", refID),
	)
	return nil
}

// List returns the newest matching rows, capped. Concurrent polls with the
// same filters collapse into a single query; the shared query runs detached
// from the first poller's context so one client disconnecting does not cancel
// everyone else's result.
func (s *service) List(ctx context.Context, f ListFilters) ([]NotificationResponse, error) {
	key := fmt.Sprintf("%s|%t", f.TargetRole, f.UnreadOnly)
	queryCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.repo.List(queryCtx, f, listCap)
	})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(v.([]Notification)), nil
}

// MarkRead is idempotent: re-marking an already-read notification succeeds.
func (s *service) MarkRead(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	return s.repo.MarkRead(ctx, id)
}
