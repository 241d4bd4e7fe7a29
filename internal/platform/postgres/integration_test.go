package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/postgres"
	"github.com/akssingh0102/task-management/internal/query"
	"github.com/akssingh0102/task-management/internal/store"
	"github.com/akssingh0102/task-management/internal/testdb"
)

type pgStores struct {
	users         store.UserStore
	projects      store.ProjectStore
	comments      store.CommentStore
	tasks         store.TaskStore
	logs          store.TaskLogStore
	notifications store.NotificationStore
}

func storesOn(tx *sql.Tx) pgStores {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return pgStores{
		users:         postgres.NewPostgresUserStore(tx, quiet),
		projects:      postgres.NewPostgresProjectStore(tx, quiet),
		comments:      postgres.NewPostgresCommentStore(tx, quiet),
		tasks:         postgres.NewPostgresTaskStore(tx, quiet),
		logs:          postgres.NewPostgresTaskLogStore(tx, quiet),
		notifications: postgres.NewPostgresNotificationStore(tx, quiet),
	}
}

func insertUser(t *testing.T, s pgStores, name string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(name, uuid.NewString()+"@example.com", "password123")
	require.NoError(t, err)
	u.HashedPassword, u.Password = "hashed", ""
	require.NoError(t, s.users.Create(context.Background(), u))
	return u
}

func TestIntegrationTaskLifecycle(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := storesOn(tx)

		owner := insertUser(t, s, "Owner")
		assignee := insertUser(t, s, "Assignee")

		project, err := domain.NewProject("Integration", owner.ID)
		require.NoError(t, err)
		require.NoError(t, s.projects.Create(ctx, project))

		due := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
		task, err := domain.NewTask("Write report", "quarterly numbers", "",
			domain.TaskPriorityHigh, &due, project.ID, &assignee.ID)
		require.NoError(t, err)
		require.NoError(t, s.tasks.Create(ctx, task))

		status := domain.TaskStatusInProgress
		update := domain.TaskUpdate{Status: &status}
		updated, err := s.tasks.Update(ctx, task.ID, update)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
		assert.Equal(t, domain.TaskPriorityHigh, updated.Priority)

		changes := domain.DiffTask(*task, *updated, update, owner.ID, time.Now())
		require.Len(t, changes, 1)
		require.NoError(t, s.logs.Append(ctx, changes))

		history, err := s.logs.ListByTask(ctx, task.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "status", history[0].FieldChanged)
		require.NotNil(t, history[0].NewValue)
		assert.Equal(t, "in_progress", *history[0].NewValue)

		comment, err := domain.NewComment(task.ID, owner.ID, "needs 100% of the figures")
		require.NoError(t, err)
		require.NoError(t, s.comments.Create(ctx, comment))

		byProject, err := query.Build(query.Filter{ProjectID: &project.ID})
		require.NoError(t, err)
		views, err := s.tasks.Search(ctx, byProject)
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.NotNil(t, views[0].ProjectName)
		assert.Equal(t, "Integration", *views[0].ProjectName)
		require.NotNil(t, views[0].AssignedUserName)
		assert.Equal(t, "Assignee", *views[0].AssignedUserName)

		keyword := "100%"
		byComment, err := query.Build(query.Filter{ProjectID: &project.ID, CommentKeyword: &keyword})
		require.NoError(t, err)
		views, err = s.tasks.Search(ctx, byComment)
		require.NoError(t, err)
		assert.Len(t, views, 1)

		miss := "100x"
		noMatch, err := query.Build(query.Filter{ProjectID: &project.ID, CommentKeyword: &miss})
		require.NoError(t, err)
		views, err = s.tasks.Search(ctx, noMatch)
		require.NoError(t, err)
		assert.Empty(t, views)

		days := 3
		withinDays, err := query.Build(query.Filter{ProjectID: &project.ID, DueInDays: &days})
		require.NoError(t, err)
		views, err = s.tasks.Search(ctx, withinDays)
		require.NoError(t, err)
		assert.Len(t, views, 1)

		dueSoon, err := s.tasks.ListDueBetween(ctx, due.Add(-time.Minute), due.Add(time.Minute))
		require.NoError(t, err)
		assert.Contains(t, taskIDs(dueSoon), task.ID)

		note, err := domain.NewNotification(assignee.ID, task.ID, domain.UpdatedMessage(updated.Status))
		require.NoError(t, err)
		require.NoError(t, s.notifications.Create(ctx, note))

		inbox, err := s.notifications.ListByUser(ctx, assignee.ID)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, "Task status has been updated to: in_progress.", inbox[0].Message)
	})
}

func TestIntegrationConstraintErrors(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := storesOn(tx)
		user := insertUser(t, s, "Dup")

		again, err := domain.NewUser("Dup", user.Email, "password123")
		require.NoError(t, err)
		again.HashedPassword = "hashed"
		err = s.users.Create(ctx, again)
		require.ErrorIs(t, err, store.ErrEmailExists)
	})

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := storesOn(tx)

		task, err := domain.NewTask("Orphan", "", "", domain.TaskPriorityLow, nil, uuid.New(), nil)
		require.NoError(t, err)
		err = s.tasks.Create(ctx, task)
		require.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func taskIDs(tasks []domain.Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
