package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"projecthub/internal/models"
	"projecthub/internal/repository"
)

type dashboardServiceEnv struct {
	db       *gorm.DB
	stores   *DashboardService
	tasks    *TaskService
	projects *ProjectService
	users    *UserService
	user     models.User
	project  models.Project
}

func setupDashboardService(t *testing.T) dashboardServiceEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	user := models.User{Name: "Owner", Email: "owner@example.com", Role: models.RoleUser, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	project := models.Project{Name: "Website relaunch", Status: models.ProjectStatusActive, CreatedBy: user.ID}
	require.NoError(t, db.Create(&project).Error)

	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	userRepo := repository.NewUserRepository(db)
	stores := NewDashboardService(projectRepo, taskRepo, userRepo)

	return dashboardServiceEnv{
		db:       db,
		stores:   stores,
		tasks:    NewTaskService(taskRepo, projectRepo, userRepo, stores),
		projects: NewProjectService(projectRepo, stores),
		users:    NewUserService(userRepo, stores),
		user:     user,
		project:  project,
	}
}

func TestDashboardService_LoadsOnce(t *testing.T) {
	env := setupDashboardService(t)
	ctx := context.Background()

	require.NoError(t, env.stores.EnsureLoaded(ctx))
	require.Equal(t, 1, env.stores.Users.Len())
	require.Equal(t, 1, env.stores.Projects.Len())

	// Rows inserted behind the service's back stay invisible until an
	// explicit refresh.
	ghost := models.Task{Title: "Imported task", ProjectID: env.project.ID, Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, CreatedBy: env.user.ID}
	require.NoError(t, env.db.Create(&ghost).Error)

	require.NoError(t, env.stores.EnsureLoaded(ctx))
	require.Equal(t, 0, env.stores.Tasks.Len())

	require.NoError(t, env.stores.Refresh(ctx))
	require.Equal(t, 1, env.stores.Tasks.Len())
}

func TestDashboardService_WritesPatchStores(t *testing.T) {
	env := setupDashboardService(t)
	ctx := context.Background()

	require.NoError(t, env.stores.EnsureLoaded(ctx))

	first, err := env.tasks.CreateTask(CreateTaskInput{
		Title:     "First task",
		ProjectID: env.project.ID,
		CreatedBy: env.user.ID,
	})
	require.NoError(t, err)
	second, err := env.tasks.CreateTask(CreateTaskInput{
		Title:     "Second task",
		ProjectID: env.project.ID,
		CreatedBy: env.user.ID,
	})
	require.NoError(t, err)

	snapshot := env.stores.Tasks.Snapshot()
	require.Len(t, snapshot, 2)
	require.Equal(t, second.ID, snapshot[0].ID, "newest entry is prepended")
	require.Equal(t, first.ID, snapshot[1].ID)

	done := models.TaskStatusDone
	_, err = env.tasks.UpdateTask(first.ID, UpdateTaskInput{Status: &done})
	require.NoError(t, err)

	snapshot = env.stores.Tasks.Snapshot()
	require.Equal(t, models.TaskStatusDone, snapshot[1].Status, "updates replace the stored row in place")

	require.NoError(t, env.tasks.DeleteTask(second.ID))
	require.Equal(t, 1, env.stores.Tasks.Len())

	summary := env.stores.Summary()
	require.Equal(t, 1, summary.TotalTasks)
	require.Equal(t, 100, summary.TaskCompletionRate)
}

func TestDashboardService_ProjectAndUserWritesPatchStores(t *testing.T) {
	env := setupDashboardService(t)
	ctx := context.Background()

	require.NoError(t, env.stores.EnsureLoaded(ctx))

	project, err := env.projects.CreateProject(CreateProjectInput{
		Name:      "Mobile app",
		CreatedBy: env.user.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 2, env.stores.Projects.Len())

	onHold := models.ProjectStatusOnHold
	_, err = env.projects.UpdateProject(project.ID, UpdateProjectInput{Status: &onHold})
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusOnHold, env.stores.Projects.Snapshot()[0].Status)

	require.NoError(t, env.projects.DeleteProject(project.ID))
	require.Equal(t, 1, env.stores.Projects.Len())

	created, err := env.users.CreateUser(CreateUserInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "password123",
		Role:     models.RoleManager,
	})
	require.NoError(t, err)
	require.Equal(t, 2, env.stores.Users.Len())

	require.NoError(t, env.users.DeleteUser(created.ID))
	require.Equal(t, 1, env.stores.Users.Len())
}
