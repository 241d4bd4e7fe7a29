// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// Each mock keeps a small in-memory state so the common paths work without
// setup. Every method can be overridden with its Fn field, and call counts
// are recorded for assertions:
//
//	tasks := mocks.NewMockTaskStore()
//	tasks.UpdateFn = func(ctx context.Context, id uuid.UUID, u domain.TaskUpdate) (*domain.Task, error) {
//		return nil, store.ErrTransient
//	}
package mocks
