package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"projecthub/internal/activity"
	"projecthub/internal/dashboard"
	"projecthub/internal/models"
	"projecthub/internal/repository"
	"projecthub/internal/services"
)

type dashboardTestEnv struct {
	db          *gorm.DB
	handler     *DashboardHandler
	taskService *services.TaskService
	users       []models.User
	project     models.Project
}

func setupDashboardTestEnv(t *testing.T) dashboardTestEnv {
	t.Helper()

	db := setupTestDB(t)

	users := []models.User{
		{Name: "Alice", Email: "alice@example.com", Role: models.RoleAdmin, PasswordHash: "x"},
		{Name: "Bob", Email: "bob@example.com", Role: models.RoleUser, PasswordHash: "x"},
	}
	require.NoError(t, db.Create(&users).Error)

	project := models.Project{Name: "Website relaunch", Status: models.ProjectStatusActive, CreatedBy: users[0].ID}
	require.NoError(t, db.Create(&project).Error)

	tasks := []models.Task{
		{Title: "Done one", ProjectID: project.ID, AssignedTo: &users[0].ID, Status: models.TaskStatusDone, Priority: models.TaskPriorityHigh, CreatedBy: users[0].ID},
		{Title: "Open one", ProjectID: project.ID, AssignedTo: &users[0].ID, Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, CreatedBy: users[0].ID},
		{Title: "Open two", ProjectID: project.ID, Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh, CreatedBy: users[0].ID},
		{Title: "Open three", ProjectID: project.ID, Status: models.TaskStatusTodo, Priority: models.TaskPriorityUrgent, CreatedBy: users[0].ID},
	}
	require.NoError(t, db.Create(&tasks).Error)

	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, dashboardService)

	return dashboardTestEnv{
		db:          db,
		handler:     NewDashboardHandler(dashboardService),
		taskService: taskService,
		users:       users,
		project:     project,
	}
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	env := setupDashboardTestEnv(t)

	r := gin.New()
	r.GET("/api/dashboard/summary", env.handler.GetSummary)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary dashboard.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 1, summary.TotalProjects)
	require.Equal(t, 4, summary.TotalTasks)
	require.Equal(t, 2, summary.TotalUsers)
	require.Equal(t, 25, summary.TaskCompletionRate)

	// Priority buckets come back in fixed order with zero counts dropped
	var keys []string
	for _, bucket := range summary.TasksByPriority {
		keys = append(keys, bucket.Key)
	}
	require.Equal(t, []string{"low", "high", "urgent"}, keys)
}

func TestDashboardHandler_GetProgress(t *testing.T) {
	env := setupDashboardTestEnv(t)

	r := gin.New()
	r.GET("/api/dashboard/progress", env.handler.GetProgress)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/progress", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects []dashboard.ProjectProgress `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1)
	require.Equal(t, env.project.Name, response.Projects[0].Name)
	require.Equal(t, 25, response.Projects[0].Completion)
}

func TestDashboardHandler_GetWorkload(t *testing.T) {
	env := setupDashboardTestEnv(t)

	r := gin.New()
	r.GET("/api/dashboard/workload", env.handler.GetWorkload)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/workload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Users []dashboard.UserLoad `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	byName := map[string]int{}
	for _, u := range response.Users {
		byName[u.Name] = u.TaskCount
	}
	require.Equal(t, 2, byName["Alice"], "two tasks assigned to Alice")
	require.Equal(t, 0, byName["Bob"])
}

func TestDashboardHandler_SummaryReflectsConfirmedWrites(t *testing.T) {
	env := setupDashboardTestEnv(t)

	r := gin.New()
	r.GET("/api/dashboard/summary", env.handler.GetSummary)

	// First request bulk-loads the stores.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var summary dashboard.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 4, summary.TotalTasks)

	// A confirmed write patches the store; the next read sees it
	// without any reload.
	_, err := env.taskService.CreateTask(services.CreateTaskInput{
		Title:     "Fifth task",
		ProjectID: env.project.ID,
		CreatedBy: env.users[0].ID,
	})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 5, summary.TotalTasks)
}

func TestDashboardHandler_RefreshResyncsStores(t *testing.T) {
	env := setupDashboardTestEnv(t)

	r := gin.New()
	r.GET("/api/dashboard/summary", env.handler.GetSummary)
	r.POST("/api/dashboard/refresh", env.handler.Refresh)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// A row inserted outside the API is invisible until refreshed.
	ghost := models.Task{Title: "Imported", ProjectID: env.project.ID, Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, CreatedBy: env.users[0].ID}
	require.NoError(t, env.db.Create(&ghost).Error)

	var summary dashboard.Summary
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 4, summary.TotalTasks)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/dashboard/refresh", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 5, summary.TotalTasks)
}

func TestDashboardHandler_GetActivity(t *testing.T) {
	env := setupDashboardTestEnv(t)

	r := gin.New()
	r.GET("/api/activity", env.handler.GetActivity)

	req := httptest.NewRequest(http.MethodGet, "/api/activity?limit=3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Activities []activity.Entry `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Activities, 3)

	// Newest first across all entity types
	for i := 1; i < len(response.Activities); i++ {
		require.False(t, response.Activities[i].Timestamp.After(response.Activities[i-1].Timestamp))
	}
}
