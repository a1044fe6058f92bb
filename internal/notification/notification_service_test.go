package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-intranet/internal/notification"
	notificationerrors "go-intranet/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeNotificationRepo struct {
	rows       []notification.Notification
	createErr  error
	lastLimit  int
	listCalls  int
	lastCtxErr error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotificationRepo) List(ctx context.Context, filters notification.ListFilters, limit int) ([]notification.Notification, error) {
	f.lastLimit = limit
	f.listCalls++
	f.lastCtxErr = ctx.Err()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []notification.Notification
	for _, n := range f.rows {
		if filters.TargetRole != "" && (n.TargetRole == nil || *n.TargetRole != filters.TargetRole) {
			continue
		}
		if filters.UnreadOnly && n.Read {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	for i := range f.rows {
		if f.rows[i].ID.String() == id {
			n := f.rows[i]
			return &n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for i := range f.rows {
		if f.rows[i].ID.String() == id {
			f.rows[i].Read = true
		}
	}
	return nil
}

type fakePublisher struct {
	published []notification.Notification
	err       error
}

func (f *fakePublisher) PublishCreated(ctx context.Context, n notification.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, n)
	return nil
}

func TestService_NotifyRole(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts a role-targeted row and publishes it", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		pub := &fakePublisher{}
		svc := notification.NewService(repo, pub, zap.NewNop())

		err := svc.NotifyRole(ctx, "rrhh", "Nueva solicitud", "detalle", "solicitud", "req-1")

		assert.NoError(t, err)
		assert.Len(t, repo.rows, 1)
		assert.Equal(t, "rrhh", *repo.rows[0].TargetRole)
		assert.Equal(t, "req-1", repo.rows[0].RefID)
		assert.False(t, repo.rows[0].Read)
		assert.Len(t, pub.published, 1)
	})

	t.Run("publish failure never fails the insert", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		pub := &fakePublisher{err: errors.New("broker down")}
		svc := notification.NewService(repo, pub, zap.NewNop())

		err := svc.NotifyRole(ctx, "rrhh", "t", "m", "solicitud", "req-1")

		assert.NoError(t, err)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("insert failure surfaces", func(t *testing.T) {
		repo := &fakeNotificationRepo{createErr: errors.New("locked")}
		svc := notification.NewService(repo, nil, zap.NewNop())

		err := svc.NotifyRole(ctx, "rrhh", "t", "m", "solicitud", "req-1")

		assert.Error(t, err)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("caps the result at twenty newest", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		role := "rrhh"
		for i := 0; i < 30; i++ {
			repo.rows = append(repo.rows, notification.Notification{
				ID:         uuid.New(),
				Title:      "t",
				Message:    "m",
				Category:   notification.CategorySolicitud,
				TargetRole: &role,
				RefType:    notification.RefTypeSolicitud,
				RefID:      "r",
				CreatedAt:  time.Now().UTC(),
			})
		}
		svc := notification.NewService(repo, nil, zap.NewNop())

		out, err := svc.List(ctx, notification.ListFilters{TargetRole: "rrhh"})

		assert.NoError(t, err)
		assert.Equal(t, 20, repo.lastLimit)
		assert.Len(t, out, 20)
	})

	t.Run("a cancelled poller does not cancel the shared query", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		role := "rrhh"
		repo.rows = []notification.Notification{
			{ID: uuid.New(), TargetRole: &role},
		}
		svc := notification.NewService(repo, nil, zap.NewNop())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		out, err := svc.List(cancelled, notification.ListFilters{TargetRole: "rrhh"})

		assert.NoError(t, err)
		assert.Len(t, out, 1)
		assert.NoError(t, repo.lastCtxErr)
	})

	t.Run("unread filter", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		role := "rrhh"
		read := notification.Notification{ID: uuid.New(), TargetRole: &role, Read: true}
		unread := notification.Notification{ID: uuid.New(), TargetRole: &role}
		repo.rows = []notification.Notification{read, unread}
		svc := notification.NewService(repo, nil, zap.NewNop())

		out, err := svc.List(ctx, notification.ListFilters{TargetRole: "rrhh", UnreadOnly: true})

		assert.NoError(t, err)
		assert.Len(t, out, 1)
		assert.Equal(t, unread.ID.String(), out[0].ID)
	})
}

func TestService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks and stays marked on a second call", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		role := "rrhh"
		n := notification.Notification{ID: uuid.New(), TargetRole: &role}
		repo.rows = []notification.Notification{n}
		svc := notification.NewService(repo, nil, zap.NewNop())

		assert.NoError(t, svc.MarkRead(ctx, n.ID.String()))
		assert.True(t, repo.rows[0].Read)

		// Idempotent: already-read is still a success.
		assert.NoError(t, svc.MarkRead(ctx, n.ID.String()))
		assert.True(t, repo.rows[0].Read)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := notification.NewService(&fakeNotificationRepo{}, nil, zap.NewNop())

		err := svc.MarkRead(ctx, uuid.New().String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})
}
