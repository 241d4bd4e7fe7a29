package seed_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akssingh0102/task-management/internal/mocks"
	"github.com/akssingh0102/task-management/internal/platform/postgres"
	"github.com/akssingh0102/task-management/internal/seed"
	"github.com/akssingh0102/task-management/internal/testdb"
)

func TestIntegrationApplyAgainstPostgres(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	f, err := seed.Default()
	require.NoError(t, err)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		stores := seed.Stores{
			Users:         postgres.NewPostgresUserStore(tx, nil),
			Projects:      postgres.NewPostgresProjectStore(tx, nil),
			Tasks:         postgres.NewPostgresTaskStore(tx, nil),
			Comments:      postgres.NewPostgresCommentStore(tx, nil),
			Notifications: postgres.NewPostgresNotificationStore(tx, nil),
		}

		res, err := seed.Apply(ctx, f, stores, &mocks.MockPasswordHasher{}, nil)
		if errors.Is(err, seed.ErrAlreadySeeded) {
			t.Skip("database already holds the fixture users")
		}
		require.NoError(t, err)
		assert.Equal(t, seed.Result{Users: 5, Projects: 5, Tasks: 5, Comments: 5, Notifications: 3}, res)

		_, err = seed.Apply(ctx, f, stores, &mocks.MockPasswordHasher{}, nil)
		assert.ErrorIs(t, err, seed.ErrAlreadySeeded)
	})
}
