package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akssingh0102/task-management/internal/domain"
)

func TestChangeEventWireFormat(t *testing.T) {
	taskID := uuid.MustParse("6f1c2b9e-8d4a-4c47-9a1e-2f3b4c5d6e7f")
	assignee := uuid.MustParse("0a9b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d")

	payload, err := TaskCreated(&domain.Task{
		ID:             taskID,
		Status:         domain.TaskStatusPending,
		AssignedUserID: &assignee,
	}).Encode()
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"event": "task_created",
		"task_id": "6f1c2b9e-8d4a-4c47-9a1e-2f3b4c5d6e7f",
		"status": "pending",
		"assigned_user_id": "0a9b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
	}`, string(payload))
}

func TestChangeEventWireFormatWithoutAssignee(t *testing.T) {
	payload, err := TaskUpdated(&domain.Task{
		ID:     uuid.New(),
		Status: domain.TaskStatusCompleted,
	}).Encode()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Equal(t, "task_updated", raw["event"])
	assert.Equal(t, "completed", raw["status"])
	assert.Contains(t, raw, "assigned_user_id")
	assert.Nil(t, raw["assigned_user_id"])
}

func TestDecode(t *testing.T) {
	taskID := uuid.New()

	tests := []struct {
		name    string
		payload string
		wantErr bool
		want    ChangeEvent
	}{
		{
			name:    "updated without assignee",
			payload: `{"event":"task_updated","task_id":"` + taskID.String() + `","status":"in_progress","assigned_user_id":null}`,
			want:    ChangeEvent{Kind: KindTaskUpdated, TaskID: taskID, Status: domain.TaskStatusInProgress},
		},
		{
			name:    "unknown kind is accepted",
			payload: `{"event":"task_archived","task_id":"` + taskID.String() + `","status":"pending"}`,
			want:    ChangeEvent{Kind: "task_archived", TaskID: taskID, Status: domain.TaskStatusPending},
		},
		{name: "not json", payload: `task_created`, wantErr: true},
		{name: "bad task id", payload: `{"event":"task_created","task_id":"nope"}`, wantErr: true},
		{name: "missing task id", payload: `{"event":"task_created","status":"pending"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.payload))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedEvent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRoundTripsAssignee(t *testing.T) {
	assignee := uuid.New()
	in := ChangeEvent{Kind: KindTaskCreated, TaskID: uuid.New(), Status: domain.TaskStatusPending, AssignedUserID: &assignee}

	payload, err := in.Encode()
	require.NoError(t, err)

	out, err := Decode(payload)
	require.NoError(t, err)
	require.NotNil(t, out.AssignedUserID)
	assert.Equal(t, assignee, *out.AssignedUserID)
}
