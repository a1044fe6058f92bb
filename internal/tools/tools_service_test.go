package tools_test

import (
	"context"
	"testing"
	"time"

	"go-intranet/internal/tools"
	toolserrors "go-intranet/internal/tools/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeToolsRepo struct {
	rows []tools.Movement
}

func (f *fakeToolsRepo) Create(ctx context.Context, m *tools.Movement) error {
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeToolsRepo) FindAll(ctx context.Context) ([]tools.Movement, error) {
	return f.rows, nil
}

func (f *fakeToolsRepo) Delete(ctx context.Context, id string) (int64, error) {
	for i := range f.rows {
		if f.rows[i].ID.String() == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Latest mimics the newest-per-tool SQL over the in-memory rows.
func (f *fakeToolsRepo) Latest(ctx context.Context) ([]tools.Movement, error) {
	newest := map[string]tools.Movement{}
	for _, m := range f.rows {
		if cur, ok := newest[m.ToolID]; !ok || m.CreatedAt.After(cur.CreatedAt) {
			newest[m.ToolID] = m
		}
	}
	out := make([]tools.Movement, 0, len(newest))
	for _, m := range newest {
		out = append(out, m)
	}
	return out, nil
}

func validAction() tools.RegisterActionInput {
	return tools.RegisterActionInput{
		ToolID:          "DRILL-1",
		TechnicianEmail: "a@x.com",
		TechnicianName:  "Andrés",
		Action:          "Préstamo",
		Condition:       "buen estado",
	}
}

func TestService_RegisterAction(t *testing.T) {
	ctx := context.Background()

	t.Run("no photo stores the N/A sentinel", func(t *testing.T) {
		repo := &fakeToolsRepo{}
		svc := tools.NewService(repo, zap.NewNop())

		resp, err := svc.RegisterAction(ctx, validAction())

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.HistoryID)
		assert.Equal(t, tools.PhotoNotApplicable, resp.PhotoURL)
		assert.Equal(t, tools.PhotoNotApplicable, repo.rows[0].PhotoURL)
	})

	t.Run("photo path is kept when present", func(t *testing.T) {
		repo := &fakeToolsRepo{}
		svc := tools.NewService(repo, zap.NewNop())

		in := validAction()
		in.PhotoURL = "/uploads/tools/abc.jpg"
		resp, err := svc.RegisterAction(ctx, in)

		assert.NoError(t, err)
		assert.Equal(t, "/uploads/tools/abc.jpg", resp.PhotoURL)
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc := tools.NewService(&fakeToolsRepo{}, zap.NewNop())

		for _, mutate := range []func(*tools.RegisterActionInput){
			func(in *tools.RegisterActionInput) { in.ToolID = "" },
			func(in *tools.RegisterActionInput) { in.TechnicianEmail = "" },
			func(in *tools.RegisterActionInput) { in.Action = "" },
		} {
			in := validAction()
			mutate(&in)
			_, err := svc.RegisterAction(ctx, in)
			assert.ErrorIs(t, err, toolserrors.ErrMissingFields)
		}
	})

	t.Run("a second loan of the same tool is accepted", func(t *testing.T) {
		repo := &fakeToolsRepo{}
		svc := tools.NewService(repo, zap.NewNop())

		_, err := svc.RegisterAction(ctx, validAction())
		assert.NoError(t, err)
		_, err = svc.RegisterAction(ctx, validAction())
		assert.NoError(t, err)
		assert.Len(t, repo.rows, 2)
	})
}

func TestService_Status(t *testing.T) {
	ctx := context.Background()
	base := time.Now().UTC()

	row := func(tool, action string, offset time.Duration) tools.Movement {
		return tools.Movement{
			ID:              uuid.New(),
			ToolID:          tool,
			TechnicianEmail: "a@x.com",
			TechnicianName:  "Andrés",
			Action:          action,
			CreatedAt:       base.Add(offset),
		}
	}

	t.Run("newest movement decides the state", func(t *testing.T) {
		repo := &fakeToolsRepo{rows: []tools.Movement{
			row("DRILL-1", "Préstamo", 0),
			row("DRILL-1", "Devolución", time.Minute),
			row("SAW-2", "PRESTAMO", 2*time.Minute),
		}}
		svc := tools.NewService(repo, zap.NewNop())

		out, err := svc.Status(ctx)
		assert.NoError(t, err)

		byTool := map[string]tools.ToolStatus{}
		for _, st := range out {
			byTool[st.ToolID] = st
		}

		assert.False(t, byTool["DRILL-1"].OnLoan)
		assert.Empty(t, byTool["DRILL-1"].HolderMail)

		assert.True(t, byTool["SAW-2"].OnLoan)
		assert.Equal(t, "a@x.com", byTool["SAW-2"].HolderMail)
		assert.Equal(t, "Andrés", byTool["SAW-2"].HolderName)
	})

	t.Run("accented free-text loan still counts as a loan", func(t *testing.T) {
		repo := &fakeToolsRepo{rows: []tools.Movement{
			row("DRILL-1", "préstamo", 0),
		}}
		svc := tools.NewService(repo, zap.NewNop())

		out, err := svc.Status(ctx)
		assert.NoError(t, err)
		assert.Len(t, out, 1)
		assert.True(t, out[0].OnLoan)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the row", func(t *testing.T) {
		repo := &fakeToolsRepo{}
		svc := tools.NewService(repo, zap.NewNop())

		resp, err := svc.RegisterAction(ctx, validAction())
		assert.NoError(t, err)

		del, err := svc.Delete(ctx, resp.HistoryID)
		assert.NoError(t, err)
		assert.Equal(t, resp.HistoryID, del.DeletedID)
		assert.Empty(t, repo.rows)
	})

	t.Run("unknown id leaves the ledger unchanged", func(t *testing.T) {
		repo := &fakeToolsRepo{}
		svc := tools.NewService(repo, zap.NewNop())

		_, err := svc.RegisterAction(ctx, validAction())
		assert.NoError(t, err)

		_, err = svc.Delete(ctx, uuid.New().String())
		assert.ErrorIs(t, err, toolserrors.ErrMovementNotFound)
		assert.Len(t, repo.rows, 1)
	})
}
