package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/models"
)

func ts(day, hour int) time.Time {
	return time.Date(2026, 8, day, hour, 0, 0, 0, time.UTC)
}

func TestTaskDescriptions(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		want string
	}{
		{
			name: "done beats updated",
			task: models.Task{Status: models.TaskStatusDone, Priority: models.TaskPriorityHigh, CreatedAt: ts(1, 0), UpdatedAt: ts(2, 0)},
			want: "Task completed",
		},
		{
			name: "updated when updated_at postdates created_at",
			task: models.Task{Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh, CreatedAt: ts(1, 0), UpdatedAt: ts(2, 0)},
			want: "Task updated: in progress • high priority",
		},
		{
			name: "created when timestamps are equal",
			task: models.Task{Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, CreatedAt: ts(1, 0), UpdatedAt: ts(1, 0)},
			want: "Task created: todo • low priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Compose([]models.Task{tt.task}, nil, nil, 0)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].Description)
		})
	}
}

func TestProjectAndUserEntries(t *testing.T) {
	projects := []models.Project{
		{ID: 1, Name: "Website", Status: models.ProjectStatusOnHold, CreatedAt: ts(1, 0), UpdatedAt: ts(3, 0)},
	}
	users := []models.User{
		{ID: 2, Name: "Ann", Role: models.RoleManager, CreatedAt: ts(2, 0)},
	}

	entries := Compose(nil, projects, users, 0)

	require.Len(t, entries, 2)
	assert.Equal(t, "project-1", entries[0].ID)
	assert.Equal(t, "Project: on hold", entries[0].Description)
	assert.Equal(t, ts(3, 0), entries[0].Timestamp, "projects use the later of the two timestamps")

	assert.Equal(t, "user-2", entries[1].ID)
	assert.Equal(t, "User joined as manager", entries[1].Description)
}

func TestFeedIsReverseChronological(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "old", CreatedAt: ts(1, 0), UpdatedAt: ts(1, 0)},
		{ID: 2, Title: "new", CreatedAt: ts(5, 0), UpdatedAt: ts(5, 0)},
	}
	projects := []models.Project{
		{ID: 3, Name: "mid", CreatedAt: ts(3, 0), UpdatedAt: ts(3, 0)},
	}

	entries := Compose(tasks, projects, nil, 0)

	require.Len(t, entries, 3)
	assert.Equal(t, "task-2", entries[0].ID)
	assert.Equal(t, "project-3", entries[1].ID)
	assert.Equal(t, "task-1", entries[2].ID)
}

func TestEqualTimestampsKeepSynthesisOrder(t *testing.T) {
	when := ts(4, 0)
	tasks := []models.Task{{ID: 1, Title: "t", CreatedAt: when, UpdatedAt: when}}
	projects := []models.Project{{ID: 2, Name: "p", CreatedAt: when, UpdatedAt: when}}
	users := []models.User{{ID: 3, Name: "u", CreatedAt: when}}

	entries := Compose(tasks, projects, users, 0)

	require.Len(t, entries, 3)
	assert.Equal(t, EntryTask, entries[0].Type)
	assert.Equal(t, EntryProject, entries[1].Type)
	assert.Equal(t, EntryUser, entries[2].Type)
}

func TestLimitTruncates(t *testing.T) {
	var tasks []models.Task
	for i := 1; i <= 15; i++ {
		tasks = append(tasks, models.Task{ID: uint64(i), CreatedAt: ts(i, 0), UpdatedAt: ts(i, 0)})
	}

	entries := Compose(tasks, nil, nil, 10)

	assert.Len(t, entries, 10)
	assert.Equal(t, "task-15", entries[0].ID)
}

func TestEmptyCollectionsYieldEmptyFeed(t *testing.T) {
	assert.Empty(t, Compose(nil, nil, nil, 10))
}
