package seed_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/mocks"
	"github.com/akssingh0102/task-management/internal/seed"
)

func newStores() (seed.Stores, *mocks.MockUserStore, *mocks.MockTaskStore, *mocks.MockCommentStore, *mocks.MockNotificationStore) {
	users := mocks.NewMockUserStore()
	tasks := mocks.NewMockTaskStore()
	comments := &mocks.MockCommentStore{}
	notifications := &mocks.MockNotificationStore{}
	return seed.Stores{
		Users:         users,
		Projects:      mocks.NewMockProjectStore(),
		Tasks:         tasks,
		Comments:      comments,
		Notifications: notifications,
	}, users, tasks, comments, notifications
}

func TestDefaultFixturesParse(t *testing.T) {
	f, err := seed.Default()
	require.NoError(t, err)

	assert.Len(t, f.Users, 5)
	assert.Len(t, f.Projects, 5)
	require.Len(t, f.Tasks, 5)
	require.NotNil(t, f.Tasks[0].Due)
	assert.Equal(t, 2024, f.Tasks[0].Due.Year())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := seed.Parse(strings.NewReader("users:\n  - name: A\n    nickname: a\n"))
	assert.Error(t, err)
}

func TestApplyInsertsFixtures(t *testing.T) {
	f, err := seed.Default()
	require.NoError(t, err)
	stores, users, tasks, comments, notifications := newStores()

	res, err := seed.Apply(context.Background(), f, stores, &mocks.MockPasswordHasher{}, nil)
	require.NoError(t, err)

	assert.Equal(t, seed.Result{Users: 5, Projects: 5, Tasks: 5, Comments: 5, Notifications: 3}, res)

	alice := users.Users["alice@example.com"]
	require.NotNil(t, alice)
	assert.Equal(t, "hashed:password123", alice.HashedPassword)
	assert.Empty(t, alice.Password)

	var setup *domain.Task
	for _, task := range tasks.Tasks {
		if task.Title == "Setup React Environment" {
			setup = task
		}
	}
	require.NotNil(t, setup)
	require.NotNil(t, setup.AssignedUserID)
	assert.Equal(t, alice.ID, *setup.AssignedUserID)
	assert.Equal(t, domain.TaskPriorityHigh, setup.Priority)

	assert.Len(t, comments.Comments, 5)
	assert.Len(t, notifications.Stored(), 3)
}

func TestApplyRefusesSecondRun(t *testing.T) {
	f, err := seed.Default()
	require.NoError(t, err)
	stores, _, tasks, _, _ := newStores()

	_, err = seed.Apply(context.Background(), f, stores, &mocks.MockPasswordHasher{}, nil)
	require.NoError(t, err)

	_, err = seed.Apply(context.Background(), f, stores, &mocks.MockPasswordHasher{}, nil)
	assert.ErrorIs(t, err, seed.ErrAlreadySeeded)
	assert.Len(t, tasks.Tasks, 5)
}

func TestApplyUnknownReference(t *testing.T) {
	f, err := seed.Parse(strings.NewReader(`
users:
  - name: Alice
    email: alice@example.com
    password: password123
projects:
  - name: Orphan
    owner: nobody@example.com
`))
	require.NoError(t, err)
	stores, _, _, _, _ := newStores()

	res, err := seed.Apply(context.Background(), f, stores, &mocks.MockPasswordHasher{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown user "nobody@example.com"`)
	assert.Equal(t, 1, res.Users)
}

func TestApplyStopsOnStoreFailure(t *testing.T) {
	f, err := seed.Default()
	require.NoError(t, err)
	stores, users, _, _, _ := newStores()
	boom := errors.New("boom")
	users.CreateFn = func(context.Context, *domain.User) error { return boom }

	_, err = seed.Apply(context.Background(), f, stores, &mocks.MockPasswordHasher{}, nil)
	assert.ErrorIs(t, err, boom)
}
