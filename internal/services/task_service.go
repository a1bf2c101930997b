package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"projecthub/internal/models"
	"projecthub/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleTooShort    = errors.New("task title must be at least 3 characters")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrUnknownProject   = errors.New("project does not exist")
	ErrUnknownAssignee  = errors.New("assigned user does not exist")
	ErrInvalidTaskInput = errors.New("invalid task input")
)

// TaskService handles task business logic. Confirmed writes patch the
// task store so the dashboard views stay current without a reload.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	stores      *DashboardService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, stores *DashboardService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		stores:      stores,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	ProjectID   uint64
	AssignedTo  *uint64
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	CreatedBy   uint64
}

// UpdateTaskInput represents a partial task update. Pointer fields are
// applied only when provided; Clear flags null out nullable fields.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *models.TaskStatus
	Priority         *models.TaskPriority
	AssignedTo       *uint64
	ClearAssignedTo  bool
	DueDate          *time.Time
	ClearDueDate     bool
}

// ListTasks returns the full task collection joined with relations,
// newest first
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListProjectTasks returns the tasks belonging to one project
func (s *TaskService) ListProjectTasks(projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Project", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates input and creates a task
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if len(title) < 3 {
		return nil, ErrTitleTooShort
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownProject
		}
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if input.AssignedTo != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownAssignee
			}
			return nil, fmt.Errorf("failed to check assignee: %w", err)
		}
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   input.CreatedBy,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}
	if task.Status == models.TaskStatusDone {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// Reload with relations so the response carries the resolved
	// project and assignee.
	created, err := s.GetTask(task.ID)
	if err != nil {
		return nil, err
	}
	s.stores.Tasks.Add(*created)
	return created, nil
}

// UpdateTask applies a partial update to a task
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if len(title) < 3 {
			return nil, ErrTitleTooShort
		}
		task.Title = title
	}
	if input.ClearDescription {
		task.Description = nil
	} else if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		s.applyStatus(task, *input.Status)
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearAssignedTo {
		task.AssignedTo = nil
		task.Assignee = nil
	} else if input.AssignedTo != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownAssignee
			}
			return nil, fmt.Errorf("failed to check assignee: %w", err)
		}
		task.AssignedTo = input.AssignedTo
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.GetTask(task.ID)
	if err != nil {
		return nil, err
	}
	s.stores.Tasks.Update(*updated)
	return updated, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(id uint64) error {
	if err := s.taskRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.stores.Tasks.Remove(id)
	return nil
}

// applyStatus sets the status and keeps completed_at consistent with it:
// stamped when a task becomes done, cleared when it leaves done.
func (s *TaskService) applyStatus(task *models.Task, status models.TaskStatus) {
	if status == models.TaskStatusDone && task.Status != models.TaskStatusDone {
		now := time.Now()
		task.CompletedAt = &now
	}
	if status != models.TaskStatusDone {
		task.CompletedAt = nil
	}
	task.Status = status
}
