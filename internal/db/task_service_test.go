package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askhat-bs/trackd/internal/models"
)

func TestCreateTaskDefaults(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	task, err := CreateTask(user.ID, CreateTaskRequest{Title: "Write report"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, user.ID, task.UserID)
	assert.Nil(t, task.DoneAt)
	assert.NotEmpty(t, task.ID)
}

func TestCreateTaskInvalidValues(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	_, err := CreateTask(user.ID, CreateTaskRequest{Title: "x", Status: "DOING"})
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = CreateTask(user.ID, CreateTaskRequest{Title: "x", Priority: "URGENT"})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestCreateTaskDoneStampsDoneAt(t *testing.T) {
	setupTestDB(t)
	at := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)
	setNow(t, at)
	user := createTestUser(t, "alice@example.com")

	task, err := CreateTask(user.ID, CreateTaskRequest{Title: "x", Status: models.StatusDone})
	require.NoError(t, err)
	require.NotNil(t, task.DoneAt)
	assert.True(t, task.DoneAt.Equal(at))
}

func seedFilterTasks(t *testing.T, userID string) {
	t.Helper()
	for _, req := range []CreateTaskRequest{
		{Title: "Write report", Description: "quarterly numbers", Status: models.StatusDone, Priority: models.PriorityHigh, Category: "Work"},
		{Title: "Review PR", Status: models.StatusDone, Priority: models.PriorityLow, Category: "Work"},
		{Title: "Plan sprint", Status: models.StatusTodo, Priority: models.PriorityHigh, Category: "Work"},
		{Title: "Buy groceries", Description: "milk and report paper", Status: models.StatusTodo, Priority: models.PriorityMedium, Category: "Home"},
	} {
		_, err := CreateTask(userID, req)
		require.NoError(t, err)
	}
}

func TestQueryTasksFiltersAreConjunctive(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	seedFilterTasks(t, user.ID)

	byStatus, err := QueryTasks(user.ID, TaskQueryOptions{Status: models.StatusDone})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byPriority, err := QueryTasks(user.ID, TaskQueryOptions{Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.Len(t, byPriority, 2)

	// status AND priority is exactly the intersection of the two.
	both, err := QueryTasks(user.ID, TaskQueryOptions{Status: models.StatusDone, Priority: models.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Write report", both[0].Title)
}

func TestQueryTasksSearchMatchesTitleOrDescription(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	seedFilterTasks(t, user.ID)

	tasks, err := QueryTasks(user.ID, TaskQueryOptions{Search: "report"})
	require.NoError(t, err)
	// Matches "Write report" by title and "Buy groceries" by description.
	require.Len(t, tasks, 2)

	tasks, err = QueryTasks(user.ID, TaskQueryOptions{Search: "report", Category: "Home"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy groceries", tasks[0].Title)
}

func TestQueryTasksNoMatchIsEmptyNotError(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	seedFilterTasks(t, user.ID)

	tasks, err := QueryTasks(user.ID, TaskQueryOptions{Category: "Errands"})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestQueryTasksSort(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	seedFilterTasks(t, user.ID)

	tasks, err := QueryTasks(user.ID, TaskQueryOptions{SortBy: "title", SortOrder: "ASC"})
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	assert.Equal(t, "Buy groceries", tasks[0].Title)
	assert.Equal(t, "Write report", tasks[3].Title)

	// An unknown sort field falls back to createdAt rather than erroring.
	tasks, err = QueryTasks(user.ID, TaskQueryOptions{SortBy: "password_hash"})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}

func TestQueryTasksScopedToOwner(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	seedFilterTasks(t, alice.ID)

	tasks, err := QueryTasks(bob.ID, TaskQueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateTaskPartial(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	task := createTestTask(t, user.ID, "Write report")

	newTitle := "Write the report"
	updated, err := UpdateTask(user.ID, task.ID, UpdateTaskRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	// Untouched fields keep their values.
	assert.Equal(t, models.StatusTodo, updated.Status)
	assert.Equal(t, models.PriorityMedium, updated.Priority)
}

func TestUpdateTaskDoneTransitions(t *testing.T) {
	setupTestDB(t)
	at := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)
	setNow(t, at)
	user := createTestUser(t, "alice@example.com")
	task := createTestTask(t, user.ID, "Write report")

	done := models.StatusDone
	updated, err := UpdateTask(user.ID, task.ID, UpdateTaskRequest{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, updated.DoneAt)
	assert.True(t, updated.DoneAt.Equal(at))

	// Editing a done task without touching status keeps the stamp.
	title := "Rewrite report"
	updated, err = UpdateTask(user.ID, task.ID, UpdateTaskRequest{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.DoneAt)

	// Reopening clears it.
	todo := models.StatusTodo
	updated, err = UpdateTask(user.ID, task.ID, UpdateTaskRequest{Status: &todo})
	require.NoError(t, err)
	assert.Nil(t, updated.DoneAt)
}

func TestUpdateTaskInvalidValue(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")
	task := createTestTask(t, user.ID, "Write report")

	bad := "BLOCKED"
	_, err := UpdateTask(user.ID, task.ID, UpdateTaskRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestUpdateTaskNotOwned(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	task := createTestTask(t, alice.ID, "Alice's task")

	title := "hijacked"
	_, err := UpdateTask(bob.ID, task.ID, UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTaskCascadesLogs(t *testing.T) {
	setupTestDB(t)
	at := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)
	setNow(t, at)
	user := createTestUser(t, "alice@example.com")
	task := createTestTask(t, user.ID, "Write report")

	for i := 0; i < 2; i++ {
		_, err := StartTimer(user.ID, task.ID)
		require.NoError(t, err)
		advanceNow(t, &at, time.Minute)
		_, err = StopTimer(user.ID)
		require.NoError(t, err)
	}

	require.NoError(t, DeleteTask(user.ID, task.ID))

	_, err := GetTaskByID(user.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	logs, err := GetLogsForTask(user.ID, task.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	var orphans int64
	require.NoError(t, DB.Model(&models.TimeLog{}).Where("task_id = ?", task.ID).Count(&orphans).Error)
	assert.EqualValues(t, 0, orphans)
}

func TestDeleteTaskNotOwned(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	task := createTestTask(t, alice.ID, "Alice's task")

	err := DeleteTask(bob.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetTaskByID(alice.ID, task.ID)
	assert.NoError(t, err)
}
