package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/worklog-api/internal/models"
	"github.com/yukikurage/worklog-api/internal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestTaskRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE id = \\? AND `tasks`.`deleted_at` IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	task, err := repo.FindByID(context.Background(), 42)
	assert.Nil(t, task)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_MergesGivenColumnsOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec("UPDATE `tasks` SET `title`=\\?,`updated_at`=\\? WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 7, map[string]interface{}{"title": "renamed"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_IsSoft(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec("UPDATE `tasks` SET `deleted_at`=\\? WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHourLogRepository_List_InclusiveRange(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHourLogRepository(db)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `hour_logs` WHERE owner_id = \\? AND date >= \\? AND date <= \\?").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT \\* FROM `hour_logs` WHERE owner_id = \\? AND date >= \\? AND date <= \\? .*ORDER BY date ASC, id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "hours", "description", "owner_id"}).
			AddRow(1, from, 7.5, "standup", 3).
			AddRow(2, to, 4, "review", 3))

	logs, total, err := repo.List(context.Background(), HourLogFilter{
		OwnerID: 3,
		From:    &from,
		To:      &to,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, 7.5, logs[0].Hours)
	assert.Equal(t, models.UserID(3), logs[1].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_List_AllOwnersPaginated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reports` WHERE `reports`.`deleted_at` IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT \\* FROM `reports` WHERE `reports`.`deleted_at` IS NULL ORDER BY created_at DESC, id DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}))

	reports, total, err := repo.List(context.Background(), ReportFilter{
		Pagination: utils.PaginationParams{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, reports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}).
			AddRow(5, "Ada", "ada@example.com", "admin"))

	user, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserID(5), user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
