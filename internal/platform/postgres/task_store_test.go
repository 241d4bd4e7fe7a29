package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/postgres"
	"github.com/akssingh0102/task-management/internal/query"
	"github.com/akssingh0102/task-management/internal/store"
)

var taskCols = []string{
	"id", "title", "description", "status", "priority",
	"created_at", "due_date", "project_id", "assigned_user_id",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestTaskStoreUpdateBuildsSetClauseFromSuppliedFields(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	id := uuid.New()
	projectID := uuid.New()
	assignee := uuid.New()
	status := domain.TaskStatusCompleted
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE tasks SET status = $1, assigned_user_id = $2 WHERE id = $3 RETURNING")).
		WithArgs("completed", assignee, id).
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow(
			id.String(), "Deploy", "", "completed", "high",
			now, nil, projectID.String(), assignee.String()))

	got, err := s.Update(context.Background(), id, domain.TaskUpdate{
		Status:         &status,
		AssignedUserID: &assignee,
	})
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, domain.TaskStatusCompleted, got.Status)
	assert.Equal(t, domain.TaskPriorityHigh, got.Priority)
	require.NotNil(t, got.AssignedUserID)
	assert.Equal(t, assignee, *got.AssignedUserID)
	assert.Nil(t, got.DueDate)
}

func TestTaskStoreUpdateMissingTask(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresTaskStore(db, nil)
	priority := domain.TaskPriorityLow

	mock.ExpectQuery("UPDATE tasks SET priority").
		WillReturnRows(sqlmock.NewRows(taskCols))

	_, err := s.Update(context.Background(), uuid.New(), domain.TaskUpdate{Priority: &priority})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreUpdateRejectsEmptyUpdate(t *testing.T) {
	db, _ := newMock(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	_, err := s.Update(context.Background(), uuid.New(), domain.TaskUpdate{})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestTaskStoreGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	mock.ExpectQuery("SELECT .* FROM tasks WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreCreateForeignKeyViolation(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	task, err := domain.NewTask("Write tests", "", "", domain.TaskPriorityMedium, nil, uuid.New(), nil)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO tasks").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_project_id_fkey"})

	err = s.Create(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestTaskStoreSearchScansEnrichedRows(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	projectID := uuid.New()
	stmt, err := query.Build(query.Filter{ProjectID: &projectID})
	require.NoError(t, err)

	cols := append(append([]string{}, taskCols...), "project_name", "assigned_user_name")
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cols).
		AddRow(uuid.NewString(), "Homepage", "design", "pending", "high",
			time.Now(), due, projectID.String(), uuid.NewString(), "Web Development", "Alice").
		AddRow(uuid.NewString(), "Orphan", "", "in_progress", "low",
			time.Now(), nil, projectID.String(), nil, "Web Development", nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE tasks.project_id = $1")).
		WithArgs(projectID).
		WillReturnRows(rows)

	views, err := s.Search(context.Background(), stmt)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Homepage", views[0].Title)
	require.NotNil(t, views[0].ProjectName)
	assert.Equal(t, "Web Development", *views[0].ProjectName)
	require.NotNil(t, views[0].AssignedUserName)
	assert.Equal(t, "Alice", *views[0].AssignedUserName)
	require.NotNil(t, views[0].DueDate)
	assert.True(t, due.Equal(*views[0].DueDate))

	assert.Nil(t, views[1].AssignedUserID)
	assert.Nil(t, views[1].AssignedUserName)
}

func TestTaskStoreSearchEmptyResultIsEmptySlice(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	limit := 5
	stmt, err := query.Build(query.Filter{Limit: &limit})
	require.NoError(t, err)

	cols := append(append([]string{}, taskCols...), "project_name", "assigned_user_name")
	mock.ExpectQuery("LIMIT").WillReturnRows(sqlmock.NewRows(cols))

	views, err := s.Search(context.Background(), stmt)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestTaskStoreListDueBetweenExcludesCompleted(t *testing.T) {
	db, mock := newMock(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	from := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Millisecond)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE due_date BETWEEN $1 AND $2")).
		WithArgs(from, to, "completed").
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow(
			uuid.NewString(), "Renew cert", "", "pending", "high",
			time.Now(), from.Add(9*time.Hour), uuid.NewString(), uuid.NewString()))

	tasks, err := s.ListDueBetween(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Renew cert", tasks[0].Title)
}
