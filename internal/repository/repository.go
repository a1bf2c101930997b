package repository

import "projecthub/internal/models"

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindAll returns the full collection ordered by creation time descending
	FindAll() ([]models.Project, error)

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project. Tasks referencing it are NOT cascaded;
	// they keep a dangling project_id.
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindAll returns the full collection ordered by creation time
	// descending, joined with the related project and assignee.
	FindAll() ([]models.Task, error)

	// FindByProjectID returns the tasks of one project, newest first.
	FindByProjectID(projectID uint64) ([]models.Task, error)

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindAll returns the full collection ordered by name ascending
	FindAll() ([]models.User, error)

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete deletes a user
	Delete(id uint64) error
}
