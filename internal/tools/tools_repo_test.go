package tools_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-intranet/internal/tools"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockedRepo(t *testing.T) (tools.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// The sqlite dialector probes the server version during Initialize.
	mock.ExpectQuery(regexp.QuoteMeta("select sqlite_version()")).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.0"))

	gdb, err := gorm.Open(sqlite.Dialector{Conn: db}, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	return tools.NewRepository(gdb), mock
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("reports the affected row count", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		id := uuid.New().String()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tool_history` WHERE id = ?")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		affected, err := repo.Delete(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows for an unknown id", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		id := uuid.New().String()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tool_history` WHERE id = ?")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		affected, err := repo.Delete(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Latest(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockedRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "tool_id", "technician_email", "technician_name",
		"action", "condition", "photo_url", "created_at",
	}).
		AddRow(uuid.New().String(), "DRILL-1", "a@x.com", "Andrés",
			"Devolución", "bien", "N/A", now).
		AddRow(uuid.New().String(), "SAW-2", "b@x.com", "Berta",
			"Préstamo", "ok", "N/A", now)

	// The per-tool subselect must tie-break equal timestamps on id, so a
	// tool with two movements in the same instant yields exactly one row.
	mock.ExpectQuery(`SELECT h\.\* FROM tool_history h[\s\S]*ORDER BY h2\.created_at DESC, h2\.id DESC LIMIT 1`).
		WillReturnRows(rows)

	latest, err := repo.Latest(ctx)

	assert.NoError(t, err)
	assert.Len(t, latest, 2)
	assert.Equal(t, "DRILL-1", latest[0].ToolID)
	assert.Equal(t, "SAW-2", latest[1].ToolID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
